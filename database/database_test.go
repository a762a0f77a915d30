package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"stockroom/database"
	"stockroom/loader"
	"stockroom/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	if err := loader.InitDatabase(db); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return db
}

func createItem(t *testing.T, db *sqlx.DB, serial, itemType string) model.Item {
	t.Helper()
	tx, err := db.Beginx()
	if err != nil {
		t.Fatalf("failed to begin tx: %v", err)
	}
	item, err := database.CreateItemInTx(tx, model.ItemInput{
		SerialNumber: serial,
		ItemType:     itemType,
		Description:  "Desc " + serial,
		SizeOrSource: "Std",
	})
	if err != nil {
		t.Fatalf("failed to create item %s: %v", serial, err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("failed to commit item %s: %v", serial, err)
	}
	return *item
}

func insertTransaction(t *testing.T, db *sqlx.DB, kind model.Kind, number, date string, lines ...model.TransactionLine) {
	t.Helper()
	tx, err := db.Beginx()
	if err != nil {
		t.Fatalf("failed to begin tx: %v", err)
	}
	ct := model.CommittedTransaction{
		ID: uuid.NewString(), Kind: kind, Number: number, Date: date, Lines: lines,
	}
	if err := database.InsertCommittedTransactionInTx(tx, &ct); err != nil {
		t.Fatalf("failed to insert transaction %s: %v", number, err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("failed to commit transaction %s: %v", number, err)
	}
}

func TestGetItemBySerial(t *testing.T) {
	db := newTestDB(t)
	created := createItem(t, db, "SN1", "Paper")

	item, err := database.GetItemBySerial(db, "SN1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if item == nil || item.ID != created.ID {
		t.Errorf("expected item %s, got %+v", created.ID, item)
	}

	missing, err := database.GetItemBySerial(db, "UNKNOWN")
	if err != nil {
		t.Fatalf("missing lookup should not error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown serial, got %+v", missing)
	}

	// Serial matching is exact.
	lower, err := database.GetItemBySerial(db, "sn1")
	if err != nil {
		t.Fatalf("lowercase lookup errored: %v", err)
	}
	if lower != nil {
		t.Errorf("expected exact-match miss for sn1, got %+v", lower)
	}
}

func TestCreateItemDuplicateSerial(t *testing.T) {
	db := newTestDB(t)
	createItem(t, db, "SN1", "Paper")

	tx, err := db.Beginx()
	if err != nil {
		t.Fatalf("failed to begin tx: %v", err)
	}
	defer tx.Rollback()
	_, err = database.CreateItemInTx(tx, model.ItemInput{SerialNumber: "SN1", ItemType: "Pens"})
	if err == nil {
		t.Fatal("expected unique violation for duplicate serial")
	}
	if !database.IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation should classify %v", err)
	}
}

func TestGetItemsBySerials(t *testing.T) {
	db := newTestDB(t)
	createItem(t, db, "SN1", "Paper")
	createItem(t, db, "SN2", "Pens")

	found, err := database.GetItemsBySerials(db, []string{"SN1", "SN2", "SN-MISSING"})
	if err != nil {
		t.Fatalf("bulk lookup failed: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("expected 2 hits, got %+v", found)
	}
	if _, ok := found["SN-MISSING"]; ok {
		t.Error("missing serial should be absent from the result map")
	}
}

func TestTransactionNumberExistsPerKind(t *testing.T) {
	db := newTestDB(t)
	item := createItem(t, db, "SN1", "Paper")
	insertTransaction(t, db, model.KindDelivery, "DEL-1", "20250831",
		model.TransactionLine{Item: item, Quantity: 1})

	exists, err := database.TransactionNumberExists(db, model.KindDelivery, "DEL-1")
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if !exists {
		t.Error("DEL-1 should exist for deliveries")
	}

	exists, err = database.TransactionNumberExists(db, model.KindCheckout, "DEL-1")
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if exists {
		t.Error("uniqueness is per kind; DEL-1 should not exist for checkouts")
	}
}

func TestInsertDuplicateTransactionNumber(t *testing.T) {
	db := newTestDB(t)
	item := createItem(t, db, "SN1", "Paper")
	insertTransaction(t, db, model.KindDelivery, "DEL-1", "20250831",
		model.TransactionLine{Item: item, Quantity: 1})

	tx, err := db.Beginx()
	if err != nil {
		t.Fatalf("failed to begin tx: %v", err)
	}
	defer tx.Rollback()
	ct := model.CommittedTransaction{
		Kind: model.KindDelivery, Number: "DEL-1", Date: "20250901",
		Lines: []model.TransactionLine{{Item: item, Quantity: 2}},
	}
	err = database.InsertCommittedTransactionInTx(tx, &ct)
	if err == nil {
		t.Fatal("expected unique violation for duplicate number")
	}
	if !database.IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation should classify %v", err)
	}
}

func TestQueryTransactionsByDateRange(t *testing.T) {
	db := newTestDB(t)
	item1 := createItem(t, db, "SN1", "Paper")
	item2 := createItem(t, db, "SN2", "Pens")

	insertTransaction(t, db, model.KindDelivery, "DEL-1", "20250801",
		model.TransactionLine{Item: item1, Quantity: 1})
	insertTransaction(t, db, model.KindDelivery, "DEL-2", "20250815",
		model.TransactionLine{Item: item2, Quantity: 2},
		model.TransactionLine{Item: item1, Quantity: 3})
	insertTransaction(t, db, model.KindDelivery, "DEL-3", "20250901",
		model.TransactionLine{Item: item1, Quantity: 4})
	insertTransaction(t, db, model.KindCheckout, "CHK-1", "20250815",
		model.TransactionLine{Item: item1, Quantity: 5})

	got, err := database.QueryTransactionsByDateRange(db, model.KindDelivery, "20250801", "20250831")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected DEL-1 and DEL-2, got %+v", got)
	}
	if got[0].Number != "DEL-1" || got[1].Number != "DEL-2" {
		t.Errorf("unexpected order: %s, %s", got[0].Number, got[1].Number)
	}
	// Lines come back in committed order.
	if len(got[1].Lines) != 2 || got[1].Lines[0].Item.SerialNumber != "SN2" {
		t.Errorf("line order not preserved: %+v", got[1].Lines)
	}

	empty, err := database.QueryTransactionsByDateRange(db, model.KindDelivery, "20240101", "20240131")
	if err != nil {
		t.Fatalf("empty-range query failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no transactions, got %+v", empty)
	}
}

func TestGetInventoryBalances(t *testing.T) {
	db := newTestDB(t)
	item1 := createItem(t, db, "SN1", "Paper")
	item2 := createItem(t, db, "SN2", "Pens")
	createItem(t, db, "SN3", "Glue") // never transacted

	insertTransaction(t, db, model.KindDelivery, "DEL-1", "20250801",
		model.TransactionLine{Item: item1, Quantity: 10},
		model.TransactionLine{Item: item2, Quantity: 4})
	insertTransaction(t, db, model.KindCheckout, "CHK-1", "20250815",
		model.TransactionLine{Item: item1, Quantity: 3})

	balances, err := database.GetInventoryBalances(db)
	if err != nil {
		t.Fatalf("balance query failed: %v", err)
	}
	bySerial := make(map[string]int)
	for _, b := range balances {
		bySerial[b.Item.SerialNumber] = b.Quantity
	}
	if bySerial["SN1"] != 7 {
		t.Errorf("SN1 balance: want 7, got %d", bySerial["SN1"])
	}
	if bySerial["SN2"] != 4 {
		t.Errorf("SN2 balance: want 4, got %d", bySerial["SN2"])
	}
	if qty, ok := bySerial["SN3"]; !ok || qty != 0 {
		t.Errorf("untransacted SN3 should report 0, got %d (present=%v)", qty, ok)
	}
}
