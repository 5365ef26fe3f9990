package morsel

import (
	"bytes"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/mabel-dev/draken/bridge"
	"github.com/mabel-dev/draken/errs"
	"github.com/mabel-dev/draken/typeid"
	"github.com/mabel-dev/draken/vector"
)

// Morsel is a row batch: one vector.Vector per column, sharing a single
// row count, with column names held as raw byte sequences rather than
// Go strings (§4.4).
type Morsel struct {
	names   [][]byte
	columns []vector.Vector
	numRows int
}

// FromTable builds one vector per column via the Arrow bridge. The table
// is read through a single TableReader chunk sized to its whole row
// count, so however the table's columns are internally chunked, each
// comes out as one contiguous array before being imported. strict
// requires at least one column; a non-strict empty-schema table produces
// a legal zero-column morsel.
func FromTable(table arrow.Table, strict bool) (*Morsel, error) {
	numCols := int(table.NumCols())
	if numCols == 0 && strict {
		return nil, errs.Wrap(errs.ColumnNotFound, "empty schema: table has no columns")
	}

	m := &Morsel{
		names:   make([][]byte, numCols),
		columns: make([]vector.Vector, numCols),
		numRows: int(table.NumRows()),
	}
	if numCols == 0 {
		return m, nil
	}

	chunkSize := table.NumRows()
	if chunkSize == 0 {
		chunkSize = 1
	}
	tr := array.NewTableReader(table, chunkSize)
	defer tr.Release()

	if !tr.Next() {
		for i := 0; i < numCols; i++ {
			field := table.Schema().Field(i)
			m.names[i] = []byte(field.Name)
			b := array.NewBuilder(memory.DefaultAllocator, field.Type)
			arr := b.NewArray()
			b.Release()
			vec, err := bridge.Import(arr)
			arr.Release()
			if err != nil {
				return nil, err
			}
			m.columns[i] = vec
		}
		return m, nil
	}

	rec := tr.Record()
	for i, arr := range rec.Columns() {
		m.names[i] = []byte(rec.ColumnName(i))
		arr.Retain()
		vec, err := bridge.Import(arr)
		arr.Release()
		if err != nil {
			return nil, err
		}
		m.columns[i] = vec
	}
	return m, nil
}

// Column returns the first column whose name matches, linear-scanning in
// declaration order.
func (m *Morsel) Column(name []byte) (vector.Vector, error) {
	for i, n := range m.names {
		if bytes.Equal(n, name) {
			return m.columns[i], nil
		}
	}
	return nil, errs.Wrap(errs.ColumnNotFound, "column %q not found", string(name))
}

func (m *Morsel) Shape() (rows, cols int) { return m.numRows, len(m.columns) }
func (m *Morsel) NumRows() int            { return m.numRows }
func (m *Morsel) NumColumns() int         { return len(m.columns) }

func (m *Morsel) ColumnNames() [][]byte {
	out := make([][]byte, len(m.names))
	copy(out, m.names)
	return out
}

func (m *Morsel) ColumnTypes() []typeid.Tag {
	out := make([]typeid.Tag, len(m.columns))
	for i, c := range m.columns {
		out[i] = c.Tag()
	}
	return out
}

// Row materializes row i as a tuple of per-column values. A null value
// contributes nil. Array and NonNative columns (ArrayVec, ForeignVec)
// always contribute a nil placeholder: their element values are not
// materialized.
func (m *Morsel) Row(i int) []any {
	out := make([]any, len(m.columns))
	for c, col := range m.columns {
		out[c] = rowValue(col, i)
	}
	return out
}

func rowValue(v vector.Vector, i int) any {
	switch vv := v.(type) {
	case *vector.Int8Vec:
		val, ok := vv.At(i)
		return nilIfInvalid(val, ok)
	case *vector.Int16Vec:
		val, ok := vv.At(i)
		return nilIfInvalid(val, ok)
	case *vector.Int32Vec:
		val, ok := vv.At(i)
		return nilIfInvalid(val, ok)
	case *vector.Int64Vec:
		val, ok := vv.At(i)
		return nilIfInvalid(val, ok)
	case *vector.Float32Vec:
		val, ok := vv.At(i)
		return nilIfInvalid(val, ok)
	case *vector.Float64Vec:
		val, ok := vv.At(i)
		return nilIfInvalid(val, ok)
	case *vector.BoolVec:
		val, ok := vv.At(i)
		return nilIfInvalid(val, ok)
	case *vector.StringVec:
		val, ok := vv.At(i)
		if !ok {
			return nil
		}
		return val
	default:
		return rowValueSafe(v, i)
	}
}

// rowValueSafe handles ArrayVec and ForeignVec, whose element access has
// no single cheap scalar shape; a nil placeholder stands in.
func rowValueSafe(v vector.Vector, i int) any {
	_ = v
	_ = i
	return nil
}

func nilIfInvalid[T any](val T, ok bool) any {
	if !ok {
		return nil
	}
	return val
}

// Take calls Take on every column with the same indices, producing a new
// Morsel with the same column names and types but a new row count.
func (m *Morsel) Take(indices []int32) (*Morsel, error) {
	out := &Morsel{
		names:   m.ColumnNames(),
		columns: make([]vector.Vector, len(m.columns)),
		numRows: len(indices),
	}
	for i, col := range m.columns {
		taken, err := col.Take(indices)
		if err != nil {
			return nil, err
		}
		out.columns[i] = taken
	}
	return out, nil
}

// Select returns a new Morsel containing only the named columns, in the
// order requested. Result vectors are shared handles, not copies.
func (m *Morsel) Select(names [][]byte) (*Morsel, error) {
	out := &Morsel{
		names:   make([][]byte, len(names)),
		columns: make([]vector.Vector, len(names)),
		numRows: m.numRows,
	}
	for i, name := range names {
		idx := -1
		for j, n := range m.names {
			if bytes.Equal(n, name) {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, errs.Wrap(errs.ColumnNotFound, "column %q not found", string(name))
		}
		out.names[i] = name
		out.columns[i] = m.columns[idx]
	}
	return out, nil
}

// Rename applies an ordered list of replacement names (its length must
// equal NumColumns, otherwise errs.LengthMismatch) and returns a new
// Morsel sharing the same vector handles. The partial old-to-new mapping
// form is RenameMapping.
func (m *Morsel) Rename(names [][]byte) (*Morsel, error) {
	if len(names) != len(m.columns) {
		return nil, errs.Wrap(errs.LengthMismatch, "rename list length %d does not match %d columns", len(names), len(m.columns))
	}
	out := &Morsel{names: make([][]byte, len(names)), columns: m.columns, numRows: m.numRows}
	copy(out.names, names)
	return out, nil
}

// RenameMapping applies a partial old-name-to-new-name mapping.
func (m *Morsel) RenameMapping(mapping map[string][]byte) *Morsel {
	out := &Morsel{names: make([][]byte, len(m.names)), columns: m.columns, numRows: m.numRows}
	for i, n := range m.names {
		if newName, ok := mapping[string(n)]; ok {
			out.names[i] = newName
		} else {
			out.names[i] = n
		}
	}
	return out
}

// ToArrow assembles an Arrow table from every column's own ToArrow, using
// the morsel's current column names. It builds a single record batch and
// wraps it as a one-chunk-per-column table.
func (m *Morsel) ToArrow() (arrow.Table, error) {
	fields := make([]arrow.Field, len(m.columns))
	arrs := make([]arrow.Array, len(m.columns))
	for i, col := range m.columns {
		arr, err := bridge.Export(col)
		if err != nil {
			for _, done := range arrs[:i] {
				if done != nil {
					done.Release()
				}
			}
			return nil, err
		}
		fields[i] = arrow.Field{Name: string(m.names[i]), Type: arr.DataType(), Nullable: true}
		arrs[i] = arr
	}
	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecord(schema, arrs, int64(m.numRows))
	for _, arr := range arrs {
		arr.Release()
	}
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.RecordBatch{rec}), nil
}

func (m *Morsel) Release() {
	for _, c := range m.columns {
		c.Release()
	}
}
