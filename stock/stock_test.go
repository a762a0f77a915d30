package stock

import (
	"math/rand"
	"reflect"
	"testing"

	"stockroom/model"
)

func item(serial string) model.Item {
	return model.Item{ID: "id-" + serial, SerialNumber: serial, ItemType: "Stationery"}
}

func delivery(number string, lines ...model.TransactionLine) model.CommittedTransaction {
	return model.CommittedTransaction{Kind: model.KindDelivery, Number: number, Date: "20250831", Lines: lines}
}

func checkout(number string, lines ...model.TransactionLine) model.CommittedTransaction {
	return model.CommittedTransaction{Kind: model.KindCheckout, Number: number, Date: "20250831", Lines: lines}
}

func TestComputeBalances(t *testing.T) {
	transactions := []model.CommittedTransaction{
		delivery("DEL-1",
			model.TransactionLine{Item: item("SN1"), Quantity: 10},
			model.TransactionLine{Item: item("SN2"), Quantity: 4}),
		delivery("DEL-2",
			model.TransactionLine{Item: item("SN1"), Quantity: 5}),
		checkout("CHK-1",
			model.TransactionLine{Item: item("SN1"), Quantity: 7},
			model.TransactionLine{Item: item("SN2"), Quantity: 4}),
	}

	balances := ComputeBalances(transactions)
	if len(balances) != 2 {
		t.Fatalf("expected 2 balances, got %+v", balances)
	}
	if balances[0].Item.SerialNumber != "SN1" || balances[0].Quantity != 8 {
		t.Errorf("SN1 balance: expected 8, got %+v", balances[0])
	}
	if balances[1].Item.SerialNumber != "SN2" || balances[1].Quantity != 0 {
		t.Errorf("SN2 balance: expected 0, got %+v", balances[1])
	}
}

func TestComputeBalancesOrderIndependent(t *testing.T) {
	transactions := []model.CommittedTransaction{
		delivery("DEL-1", model.TransactionLine{Item: item("SN1"), Quantity: 3}),
		checkout("CHK-1", model.TransactionLine{Item: item("SN1"), Quantity: 1}),
		delivery("DEL-2", model.TransactionLine{Item: item("SN2"), Quantity: 2}),
		checkout("CHK-2", model.TransactionLine{Item: item("SN2"), Quantity: 2}),
		delivery("DEL-3",
			model.TransactionLine{Item: item("SN1"), Quantity: 6},
			model.TransactionLine{Item: item("SN3"), Quantity: 9}),
	}
	want := ComputeBalances(transactions)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]model.CommittedTransaction, len(transactions))
		copy(shuffled, transactions)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := ComputeBalances(shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %d changed the fold result:\nwant %+v\ngot  %+v", i, want, got)
		}
	}
}

func TestComputeBalancesAllowsNegative(t *testing.T) {
	transactions := []model.CommittedTransaction{
		checkout("CHK-1", model.TransactionLine{Item: item("SN1"), Quantity: 5}),
	}
	balances := ComputeBalances(transactions)
	if len(balances) != 1 || balances[0].Quantity != -5 {
		t.Errorf("expected -5 balance without error, got %+v", balances)
	}
}

func TestComputeBalancesIgnoresUnknownKind(t *testing.T) {
	transactions := []model.CommittedTransaction{
		{Kind: model.Kind("audit"), Number: "X", Date: "20250831",
			Lines: []model.TransactionLine{{Item: item("SN1"), Quantity: 3}}},
		delivery("DEL-1", model.TransactionLine{Item: item("SN1"), Quantity: 2}),
	}
	balances := ComputeBalances(transactions)
	if len(balances) != 1 || balances[0].Quantity != 2 {
		t.Errorf("unknown kind should contribute 0, got %+v", balances)
	}
}
