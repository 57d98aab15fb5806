package btab

import "fmt"

// nextTable decodes one table, dispatching its events, and reports whether
// more tables may follow. The table-level terminator yields (false, nil).
func (d *decoder) nextTable() (more bool, err error) {
	tag, err := d.readTag()
	if err != nil {
		return false, err
	}
	if tag == tagTableEnd {
		return false, nil
	}

	// The name precedes kind validation on the wire, so it is consumed even
	// for tags this revision does not know.
	name, err := d.readString()
	if err != nil {
		return false, err
	}

	switch tag {
	case tagTableBasic:
		if d.handlers.TableBasic != nil {
			d.handlers.TableBasic(d.ctx, name)
		}
		if err := d.walkBasic(); err != nil {
			return false, err
		}
	case tagTableKeyval:
		if d.handlers.TableKeyval != nil {
			d.handlers.TableKeyval(d.ctx, name)
		}
		if err := d.walkKeyval(); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("%w: table tag %d at offset %d in %s",
			ErrInternal, tag, d.src.offset(), d.src.path)
	}

	if d.handlers.TableEnd != nil {
		d.handlers.TableEnd(d.ctx)
	}
	return true, nil
}

// walkBasic decodes a basic table body: the column declarations, then every
// row. Column types are recorded for the table's lifetime so each row can be
// decoded in declaration order; the names are not retained past their event.
func (d *decoder) walkBasic() error {
	d.colTypes = d.colTypes[:0]

	if d.handlers.ColumnsBegin != nil {
		d.handlers.ColumnsBegin(d.ctx)
	}
	for {
		tag, err := d.readTag()
		if err != nil {
			return err
		}
		if tag == tagColEnd {
			if d.handlers.ColumnsEnd != nil {
				d.handlers.ColumnsEnd(d.ctx)
			}
			break
		}
		name, err := d.readString()
		if err != nil {
			return err
		}
		switch tag {
		case tagColUint64:
			d.colTypes = append(d.colTypes, tag)
			if d.handlers.ColumnUint64 != nil {
				d.handlers.ColumnUint64(d.ctx, name)
			}
		case tagColString:
			d.colTypes = append(d.colTypes, tag)
			if d.handlers.ColumnString != nil {
				d.handlers.ColumnString(d.ctx, name)
			}
		case tagColBool:
			d.colTypes = append(d.colTypes, tag)
			if d.handlers.ColumnBool != nil {
				d.handlers.ColumnBool(d.ctx, name)
			}
		default:
			return fmt.Errorf("%w: column tag %d at offset %d in %s",
				ErrInternal, tag, d.src.offset(), d.src.path)
		}
	}

	for {
		marker, err := d.readTag()
		if err != nil {
			return err
		}
		if marker == tagRowEnd {
			return nil
		}
		if d.handlers.RowBegin != nil {
			d.handlers.RowBegin(d.ctx)
		}
		for _, col := range d.colTypes {
			switch col {
			case tagColUint64:
				v, err := d.readUint(8)
				if err != nil {
					return err
				}
				if d.handlers.DataUint64 != nil {
					d.handlers.DataUint64(d.ctx, v)
				}
			case tagColString:
				v, err := d.readString()
				if err != nil {
					return err
				}
				if d.handlers.DataString != nil {
					d.handlers.DataString(d.ctx, v)
				}
			case tagColBool:
				v, err := d.readBool()
				if err != nil {
					return err
				}
				if d.handlers.DataBool != nil {
					d.handlers.DataBool(d.ctx, v)
				}
			default:
				// colTypes only ever holds validated tags.
				return fmt.Errorf("%w: recorded column tag %d", ErrInternal, col)
			}
		}
		if d.handlers.RowEnd != nil {
			d.handlers.RowEnd(d.ctx)
		}
	}
}

// walkKeyval decodes a key-value table body: (tag, name, value) entries
// until the terminator. Declaration and data events interleave per entry;
// there is no separate column phase.
func (d *decoder) walkKeyval() error {
	for {
		tag, err := d.readTag()
		if err != nil {
			return err
		}
		if tag == tagColEnd {
			return nil
		}
		name, err := d.readString()
		if err != nil {
			return err
		}
		switch tag {
		case tagColUint64:
			if d.handlers.ColumnUint64 != nil {
				d.handlers.ColumnUint64(d.ctx, name)
			}
			v, err := d.readUint(8)
			if err != nil {
				return err
			}
			if d.handlers.DataUint64 != nil {
				d.handlers.DataUint64(d.ctx, v)
			}
		case tagColString:
			if d.handlers.ColumnString != nil {
				d.handlers.ColumnString(d.ctx, name)
			}
			// The value overwrites the key name in the scratch buffer; the
			// name was already delivered above.
			v, err := d.readString()
			if err != nil {
				return err
			}
			if d.handlers.DataString != nil {
				d.handlers.DataString(d.ctx, v)
			}
		case tagColBool:
			if d.handlers.ColumnBool != nil {
				d.handlers.ColumnBool(d.ctx, name)
			}
			v, err := d.readBool()
			if err != nil {
				return err
			}
			if d.handlers.DataBool != nil {
				d.handlers.DataBool(d.ctx, v)
			}
		default:
			return fmt.Errorf("%w: key tag %d at offset %d in %s",
				ErrInternal, tag, d.src.offset(), d.src.path)
		}
	}
}
