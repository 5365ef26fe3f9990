// Command drakenbench is a small synchronous demo that exercises the
// vector, bridge, morsel and ops packages end to end: it builds a morsel,
// runs an arithmetic op over one of its columns, round-trips the result
// through Arrow IPC and the C Data Interface, records the op kernel's
// duration as a metric, and logs the total elapsed time.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mabel-dev/draken/alloc"
	drakenarrow "github.com/mabel-dev/draken/arrow"
	"github.com/mabel-dev/draken/bridge"
	"github.com/mabel-dev/draken/morsel"
	"github.com/mabel-dev/draken/ops"
	"github.com/mabel-dev/draken/typeid"
	"github.com/mabel-dev/draken/vector"
)

func main() {
	rows := flag.Int("rows", 1_000_000, "number of rows in the synthetic morsel")
	metricsAddr := flag.String("metrics-addr", "", "address to serve /metrics on, empty disables it")
	flag.Parse()

	metrics := newMetrics("drakenbench")
	if *metricsAddr != "" {
		srv := newMetricsServer(*metricsAddr)
		srv.StartAsync()
		log.Printf("serving /metrics on %s", *metricsAddr)
	}

	if err := run(*rows, metrics); err != nil {
		log.Fatalf("drakenbench: %v", err)
	}
}

func run(rows int, m *metrics) error {
	a := alloc.Default()

	left := make([]int64, rows)
	right := make([]int64, rows)
	for i := range left {
		left[i] = int64(i)
		right[i] = int64(i % 7)
	}
	leftVec := vector.NewInt64(a, left, nil)
	defer leftVec.Release()
	rightVec := vector.NewInt64(a, right, nil)
	defer rightVec.Release()

	handle, ok := ops.GetOp(typeid.Int64, false, typeid.Int64, false, ops.Add)
	if !ok {
		return fmt.Errorf("no add kernel registered for int64")
	}

	start := time.Now()
	sum, err := handle(leftVec, rightVec)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	defer sum.Release()
	m.OpDuration.Observe(time.Since(start).Seconds())

	table, err := columnsToTable(map[string]vector.Vector{"id": leftVec, "sum": sum})
	if err != nil {
		return fmt.Errorf("build table: %w", err)
	}
	defer table.Release()

	built, err := morsel.FromTable(table, true)
	if err != nil {
		return fmt.Errorf("morsel.FromTable: %w", err)
	}
	defer built.Release()

	if err := roundTripIPC(built); err != nil {
		return fmt.Errorf("ipc round trip: %w", err)
	}

	if err := roundTripCData(sum); err != nil {
		return fmt.Errorf("cdata round trip: %w", err)
	}

	m.RowsProcessed.Add(float64(rows))
	log.Printf("processed %d rows in %s", rows, time.Since(start))
	return nil
}

// columnsToTable assembles a one-record Arrow table from Draken vectors,
// giving drakenbench a real arrow.Table to hand to morsel.FromTable
// without going through a file or network source.
func columnsToTable(cols map[string]vector.Vector) (arrow.Table, error) {
	fields := make([]arrow.Field, 0, len(cols))
	arrs := make([]arrow.Array, 0, len(cols))
	numRows := int64(0)
	for name, col := range cols {
		arr, err := bridge.Export(col)
		if err != nil {
			return nil, err
		}
		fields = append(fields, arrow.Field{Name: name, Type: arr.DataType(), Nullable: true})
		arrs = append(arrs, arr)
		numRows = int64(arr.Len())
	}
	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecord(schema, arrs, numRows)
	for _, arr := range arrs {
		arr.Release()
	}
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.RecordBatch{rec}), nil
}

func roundTripIPC(m *morsel.Morsel) error {
	table, err := m.ToArrow()
	if err != nil {
		return err
	}
	defer table.Release()

	reader := array.NewTableReader(table, table.NumRows())
	defer reader.Release()
	if !reader.Next() {
		return nil
	}
	rec := reader.Record()

	w := drakenarrow.NewIPCWriter()
	data, err := w.SerializeToIPC(rec)
	if err != nil {
		return err
	}

	back, err := w.DeserializeFromIPC(data)
	if err != nil {
		return err
	}
	defer back.Release()

	if back.NumRows() != rec.NumRows() {
		return fmt.Errorf("ipc round trip changed row count: %d != %d", back.NumRows(), rec.NumRows())
	}

	multi, err := w.SerializeMultipleToIPC([]arrow.Record{rec, rec})
	if err != nil {
		return fmt.Errorf("serialize multiple: %w", err)
	}
	allBack, err := w.DeserializeAllFromIPC(multi)
	if err != nil {
		return fmt.Errorf("deserialize all: %w", err)
	}
	defer func() {
		for _, r := range allBack {
			r.Release()
		}
	}()
	if len(allBack) != 2 {
		return fmt.Errorf("multi-record ipc round trip returned %d records, want 2", len(allBack))
	}
	return nil
}

func roundTripCData(v vector.Vector) error {
	arr, err := bridge.Export(v)
	if err != nil {
		return err
	}
	dt := arr.DataType()
	arr.Release()

	cArr, cSchema, err := bridge.ExportCArray(v)
	if err != nil {
		return err
	}
	_ = cSchema

	imported, err := bridge.ImportCArray(cArr, dt)
	if err != nil {
		return err
	}
	defer imported.Release()

	if imported.Length() != v.Length() {
		return fmt.Errorf("cdata round trip changed length: %d != %d", imported.Length(), v.Length())
	}
	return nil
}
