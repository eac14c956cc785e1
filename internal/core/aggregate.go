package core

// Spending holds the per-category aggregates derived from one pass over the
// transaction list.
type Spending struct {
	// ByCategory maps category ID to total absolute amount spent.
	ByCategory map[string]Milliunits
	// TransactionsByCategory maps category ID to that category's
	// transactions in input order.
	TransactionsByCategory map[string][]Transaction
}

// Aggregate groups transactions by category in a single O(n) pass.
// Transactions without a category are skipped. Amounts are summed by
// absolute value; duplicate transactions in the input are summed as-is,
// there is no identifier-based deduplication.
func Aggregate(transactions []Transaction) Spending {
	s := Spending{
		ByCategory:             make(map[string]Milliunits),
		TransactionsByCategory: make(map[string][]Transaction),
	}

	for _, tx := range transactions {
		if tx.CategoryID == "" {
			continue
		}
		s.ByCategory[tx.CategoryID] += tx.Amount.abs()
		s.TransactionsByCategory[tx.CategoryID] = append(s.TransactionsByCategory[tx.CategoryID], tx)
	}

	return s
}
