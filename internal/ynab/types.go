package ynab

// Wire types for the YNAB v1 REST API. Every response wraps its payload in
// a "data" object; optional numeric and string fields arrive as null.

type budgetsEnvelope struct {
	Data struct {
		Budgets []wireBudget `json:"budgets"`
	} `json:"data"`
}

type wireBudget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type categoriesEnvelope struct {
	Data struct {
		CategoryGroups []wireCategoryGroup `json:"category_groups"`
	} `json:"data"`
}

type wireCategoryGroup struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Categories []wireCategory `json:"categories"`
}

type wireCategory struct {
	ID              string `json:"id"`
	CategoryGroupID string `json:"category_group_id"`
	Name            string `json:"name"`
	GoalTarget      *int64 `json:"goal_target"`
}

type transactionsEnvelope struct {
	Data struct {
		Transactions []wireTransaction `json:"transactions"`
	} `json:"data"`
}

type wireTransaction struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	Amount     int64   `json:"amount"`
	PayeeName  *string `json:"payee_name"`
	CategoryID *string `json:"category_id"`
}
