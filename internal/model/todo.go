package model

// Todo is the domain record a user wants to persist.
type Todo struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// NewTodo is the wire shape posted to the endpoint.
type NewTodo struct {
	ID       int    `json:"id"`
	FullName string `json:"fullname"`
}

// DemoTodo is the record the demo page submits.
var DemoTodo = Todo{ID: 1, FirstName: "Taro", LastName: "Yamada"}

// ToRequestModel projects a Todo onto its wire shape ("family given").
func ToRequestModel(t Todo) NewTodo {
	return NewTodo{
		ID:       t.ID,
		FullName: t.LastName + " " + t.FirstName,
	}
}
