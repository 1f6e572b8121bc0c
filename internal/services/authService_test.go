package services

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestDuplicateKeyAs(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}

	if err := duplicateKeyAs(dup, ErrEmailInUse); !errors.Is(err, ErrEmailInUse) {
		t.Fatalf("unique-index violation not translated, got %v", err)
	}
	if err := duplicateKeyAs(dup, ErrDuplicateCategory); !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("unique-index violation not translated, got %v", err)
	}

	other := errors.New("connection reset")
	if err := duplicateKeyAs(other, ErrEmailInUse); !errors.Is(err, other) {
		t.Fatalf("non-duplicate error must pass through, got %v", err)
	}
	if err := duplicateKeyAs(nil, ErrEmailInUse); err != nil {
		t.Fatalf("nil error must stay nil, got %v", err)
	}
}
