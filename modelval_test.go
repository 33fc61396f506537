package modelval_test

import (
	"context"
	"testing"

	modelval "github.com/goliatone/go-modelval"
	"github.com/goliatone/go-modelval/pkg/testsupport"
)

func TestEndToEndValidationFlow(t *testing.T) {
	v := modelval.New(modelval.WithIdentifierGenerator(testsupport.SequentialIDs()))
	ctx := context.Background()

	if v.IsLoaded() {
		t.Fatalf("fresh validators start unloaded")
	}

	testsupport.MustLoad(t, v, testsupport.PersonModel, "org.example.Person")
	if !v.IsLoaded() {
		t.Fatalf("expected loaded validator")
	}
	if v.RootType() != "org.example.Person" {
		t.Fatalf("unexpected root type %q", v.RootType())
	}

	types := v.AvailableTypes()
	if len(types) != 1 || types[0] != "org.example.Person" {
		t.Fatalf("unexpected types: %v", types)
	}

	result := v.ValidateData(ctx, map[string]any{"name": "Ada"}, "")
	if !result.IsValid {
		t.Fatalf("expected valid result, got %+v", result.Errors)
	}
	data := result.ValidatedData.(map[string]any)
	if data["name"] != "Ada" {
		t.Fatalf("unexpected validated data: %v", data)
	}

	instance := v.CreateInstance("org.example.Person")
	if instance == nil {
		t.Fatalf("expected an instance")
	}
	round := v.ValidateData(ctx, instance, "org.example.Person")
	if !round.IsValid {
		t.Fatalf("fresh instance should validate, got %+v", round.Errors)
	}
}

func TestNewValidatorsAreIndependent(t *testing.T) {
	a := modelval.New()
	b := modelval.New()

	testsupport.MustLoad(t, a, testsupport.PersonModel, "")
	if b.IsLoaded() {
		t.Fatalf("validator state must not be shared across instances")
	}
}
