// slip/builder.go
package slip

import (
	"errors"
	"fmt"

	"stockroom/catalog"
	"stockroom/model"
)

// ErrInvalidQuantity rejects any non-positive quantity. The working set is
// left unchanged; there is no clamping.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// Directory resolves serial numbers to catalog items. The production
// implementation is catalog.Directory; tests substitute fakes.
type Directory interface {
	LookupBySerial(serialNumber string) (model.Item, error)
}

// bulkDirectory is implemented by directories that can resolve a batch of
// serial numbers in one query. Bulk import uses it when available so a large
// file costs one lookup instead of one per distinct serial.
type bulkDirectory interface {
	LookupBySerials(serialNumbers []string) (map[string]model.Item, error)
}

// Builder accumulates the lines of one pending slip. It is owned by a single
// session and performs no I/O beyond directory lookups; the merge itself is
// synchronous and in-memory. The same merge serves the interactive path and
// the bulk import path.
type Builder struct {
	kind      model.Kind
	directory Directory
	lines     []model.TransactionLine
	position  map[string]int // serial number -> index into lines
}

func NewBuilder(kind model.Kind, directory Directory) *Builder {
	return &Builder{
		kind:      kind,
		directory: directory,
		position:  make(map[string]int),
	}
}

func (b *Builder) Kind() model.Kind {
	return b.kind
}

// AddLine merges (serialNumber, quantity) into the working set. An existing
// line keeps its position and gains the quantity; a new item appends. The
// lookup is skipped when the item is already in the set, so repeated adds of
// one serial cost one directory call.
func (b *Builder) AddLine(serialNumber string, quantity int) ([]model.TransactionLine, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if pos, ok := b.position[serialNumber]; ok {
		b.lines[pos].Quantity += quantity
		return b.Lines(), nil
	}
	item, err := b.directory.LookupBySerial(serialNumber)
	if err != nil {
		return nil, err
	}
	b.append(item, quantity)
	return b.Lines(), nil
}

func (b *Builder) append(item model.Item, quantity int) {
	b.position[item.SerialNumber] = len(b.lines)
	b.lines = append(b.lines, model.TransactionLine{Item: item, Quantity: quantity})
}

// BulkImport merges each row in input order. A bad row is recorded and
// skipped rather than aborting the batch; later rows still merge into earlier
// ones, so processing stays strictly sequential. When the directory supports
// batch lookup the whole file is resolved up front in one query.
func (b *Builder) BulkImport(rows []model.ImportRow) ([]model.TransactionLine, []model.ImportFailure) {
	prefetched := b.prefetch(rows)
	var failures []model.ImportFailure
	for i, row := range rows {
		if err := b.addImportRow(row, prefetched); err != nil {
			failures = append(failures, model.ImportFailure{
				RowIndex:     i,
				SerialNumber: row.SerialNumber,
				Reason:       importFailureReason(err),
			})
		}
	}
	return b.Lines(), failures
}

// prefetch resolves the distinct serial numbers not already in the working
// set. Returns nil when the directory has no batch path or the batch query
// fails, in which case rows fall back to per-serial lookups.
func (b *Builder) prefetch(rows []model.ImportRow) map[string]model.Item {
	bulk, ok := b.directory.(bulkDirectory)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var serials []string
	for _, row := range rows {
		if _, known := b.position[row.SerialNumber]; known {
			continue
		}
		if !seen[row.SerialNumber] {
			seen[row.SerialNumber] = true
			serials = append(serials, row.SerialNumber)
		}
	}
	if len(serials) == 0 {
		return nil
	}
	items, err := bulk.LookupBySerials(serials)
	if err != nil {
		return nil
	}
	return items
}

func (b *Builder) addImportRow(row model.ImportRow, prefetched map[string]model.Item) error {
	if prefetched == nil {
		_, err := b.AddLine(row.SerialNumber, row.Quantity)
		return err
	}
	if row.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if pos, ok := b.position[row.SerialNumber]; ok {
		b.lines[pos].Quantity += row.Quantity
		return nil
	}
	item, ok := prefetched[row.SerialNumber]
	if !ok {
		return catalog.ErrItemNotFound
	}
	b.append(item, row.Quantity)
	return nil
}

func importFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid quantity"
	case errors.Is(err, catalog.ErrItemNotFound):
		return "item not found"
	default:
		return fmt.Sprintf("lookup failed: %v", err)
	}
}

// Lines returns a snapshot of the working set in accumulation order.
func (b *Builder) Lines() []model.TransactionLine {
	out := make([]model.TransactionLine, len(b.lines))
	copy(out, b.lines)
	return out
}

// Clear empties the working set ("clear items").
func (b *Builder) Clear() {
	b.lines = nil
	b.position = make(map[string]int)
}
