//go:build cgo

package bridge

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/cdata"

	"github.com/mabel-dev/draken/vector"
)

// ExportCArray exports a Draken vector through the Arrow C Data
// Interface, for handing a morsel column to a foreign-language consumer
// without a copy. The caller owns the returned handles and must release
// them (cdata.ReleaseCArrowArray / release the schema) once done.
func ExportCArray(v vector.Vector) (*cdata.CArrowArray, *cdata.CArrowSchema, error) {
	arr, err := Export(v)
	if err != nil {
		return nil, nil, err
	}
	defer arr.Release()

	var cArr cdata.CArrowArray
	var cSchema cdata.CArrowSchema
	cdata.ExportArrowArray(arr, &cArr, &cSchema)
	return &cArr, &cSchema, nil
}

// ImportCArray imports an Arrow C Data Interface array of a known type
// as a Draken vector, taking ownership of the C array (it is released
// once the import completes, per cdata's contract).
func ImportCArray(cArr *cdata.CArrowArray, dt arrow.DataType) (vector.Vector, error) {
	arr, err := cdata.ImportCArrayWithType(cArr, dt)
	if err != nil {
		return nil, err
	}
	defer arr.Release()
	return Import(arr)
}
