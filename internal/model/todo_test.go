package model

import (
	"encoding/json"
	"testing"
)

func TestToRequestModel(t *testing.T) {
	got := ToRequestModel(Todo{ID: 1, FirstName: "Taro", LastName: "Yamada"})
	want := NewTodo{ID: 1, FullName: "Yamada Taro"}
	if got != want {
		t.Fatalf("ToRequestModel = %+v, want %+v", got, want)
	}
	if again := ToRequestModel(Todo{ID: 1, FirstName: "Taro", LastName: "Yamada"}); again != got {
		t.Fatalf("projection not deterministic: %+v vs %+v", again, got)
	}
}

func TestNewTodoWireShape(t *testing.T) {
	b, err := json.Marshal(ToRequestModel(DemoTodo))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"id":1,"fullname":"Yamada Taro"}` {
		t.Fatalf("wire body = %s", b)
	}
}
