package factcheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/newsmesh/cognition/internal/core/model"
	"github.com/newsmesh/cognition/internal/lookup"
)

type fakeCompanyLookup struct {
	results map[string]lookup.Result
	err     error
	calls   int
}

func (f *fakeCompanyLookup) SearchCompany(ctx context.Context, name string) (lookup.Result, error) {
	f.calls++
	if f.err != nil {
		return lookup.Result{}, f.err
	}
	if r, ok := f.results[name]; ok {
		return r, nil
	}
	return lookup.Result{Validated: false, Reason: lookup.ReasonNotFound}, nil
}

type fakeKnowledgeLookup struct {
	results map[string]lookup.Result
	calls   int
}

func (f *fakeKnowledgeLookup) SearchEntity(ctx context.Context, name, typeHint string) (lookup.Result, error) {
	f.calls++
	if r, ok := f.results[name]; ok {
		return r, nil
	}
	return lookup.Result{Validated: false, Reason: lookup.ReasonNotFound}, nil
}

func newTestValidator(registry CompanyLookup, knowledge KnowledgeLookup) *Validator {
	return NewValidator(registry, knowledge, time.Millisecond)
}

func TestValidateBatchFlagsUnverifiableCompany(t *testing.T) {
	registry := &fakeCompanyLookup{results: map[string]lookup.Result{
		"Tesla": {Validated: true, Confidence: 0.95},
	}}
	validator := newTestValidator(registry, &fakeKnowledgeLookup{})

	entities := []model.Entity{
		{Name: "Tesla", Type: model.EntityTypeCompany, Confidence: 0.98},
		{Name: "FakeCompanyCorp", Type: model.EntityTypeCompany, Confidence: 0.90},
	}

	validated, flags := validator.ValidateBatch(context.Background(), entities)

	assert.Len(t, validated, 1)
	assert.Equal(t, "Tesla", validated[0].Name)
	assert.Len(t, flags, 1)
	assert.Equal(t, "FakeCompanyCorp (company): not_found", flags[0])
}

func TestValidateBatchOnlyLowersConfidence(t *testing.T) {
	registry := &fakeCompanyLookup{results: map[string]lookup.Result{
		"Tesla":     {Validated: true, Confidence: 0.75},
		"Microsoft": {Validated: true, Confidence: 0.95},
	}}
	validator := newTestValidator(registry, &fakeKnowledgeLookup{})

	entities := []model.Entity{
		{Name: "Tesla", Type: model.EntityTypeCompany, Confidence: 0.98},
		{Name: "Microsoft", Type: model.EntityTypeCompany, Confidence: 0.80},
	}

	validated, flags := validator.ValidateBatch(context.Background(), entities)

	assert.Empty(t, flags)
	assert.Equal(t, 0.75, validated[0].Confidence, "validation caps confidence at the lookup score")
	assert.Equal(t, 0.80, validated[1].Confidence, "validation never raises confidence")
}

func TestValidateBatchUnknownTypePassesThrough(t *testing.T) {
	registry := &fakeCompanyLookup{}
	knowledge := &fakeKnowledgeLookup{}
	validator := newTestValidator(registry, knowledge)

	entities := []model.Entity{
		{Name: "Something", Type: "widget", Confidence: 0.9},
	}

	validated, flags := validator.ValidateBatch(context.Background(), entities)

	assert.Len(t, validated, 1)
	assert.Empty(t, flags)
	assert.Equal(t, 0.9, validated[0].Confidence)
	assert.Equal(t, "skipped", validated[0].Metadata["validation"])
	assert.Equal(t, 0, registry.calls)
	assert.Equal(t, 0, knowledge.calls)
}

func TestValidateBatchCachesRepeatedLookups(t *testing.T) {
	knowledge := &fakeKnowledgeLookup{results: map[string]lookup.Result{
		"Elon Musk": {Validated: true, Confidence: 0.92},
	}}
	validator := newTestValidator(&fakeCompanyLookup{}, knowledge)

	entities := []model.Entity{
		{Name: "Elon Musk", Type: model.EntityTypePerson, Confidence: 0.95},
		{Name: "Elon Musk", Type: model.EntityTypePerson, Confidence: 0.88},
	}

	validated, flags := validator.ValidateBatch(context.Background(), entities)

	assert.Len(t, validated, 2)
	assert.Empty(t, flags)
	assert.Equal(t, 1, knowledge.calls, "second occurrence must hit the cache")
}

func TestValidateBatchCachesFailuresToo(t *testing.T) {
	registry := &fakeCompanyLookup{}
	validator := newTestValidator(registry, &fakeKnowledgeLookup{})

	entities := []model.Entity{
		{Name: "FakeCompanyCorp", Type: model.EntityTypeCompany, Confidence: 0.90},
		{Name: "FakeCompanyCorp", Type: model.EntityTypeCompany, Confidence: 0.90},
	}

	validated, flags := validator.ValidateBatch(context.Background(), entities)

	assert.Empty(t, validated)
	assert.Len(t, flags, 2)
	assert.Equal(t, 1, registry.calls)
}

func TestValidateBatchLookupErrorFlagsEntity(t *testing.T) {
	registry := &fakeCompanyLookup{err: errors.New("connection refused")}
	validator := newTestValidator(registry, &fakeKnowledgeLookup{})

	entities := []model.Entity{
		{Name: "Tesla", Type: model.EntityTypeCompany, Confidence: 0.98},
	}

	validated, flags := validator.ValidateBatch(context.Background(), entities)

	assert.Empty(t, validated)
	assert.Len(t, flags, 1)
	assert.Equal(t, "Tesla (company): lookup_error", flags[0])
}

func TestValidateBatchMergesLookupMetadata(t *testing.T) {
	registry := &fakeCompanyLookup{results: map[string]lookup.Result{
		"Tesla": {
			Validated:  true,
			Confidence: 0.95,
			Metadata:   map[string]interface{}{"registry_uuid": "abc-123"},
		},
	}}
	validator := newTestValidator(registry, &fakeKnowledgeLookup{})

	entities := []model.Entity{
		{
			Name:       "Tesla",
			Type:       model.EntityTypeCompany,
			Confidence: 0.98,
			Metadata:   map[string]interface{}{"industry": "Electric Vehicles"},
		},
	}

	validated, _ := validator.ValidateBatch(context.Background(), entities)

	assert.Equal(t, "abc-123", validated[0].Metadata["registry_uuid"])
	assert.Equal(t, "Electric Vehicles", validated[0].Metadata["industry"])
}

func TestCacheKeyedByNameAndType(t *testing.T) {
	cache := NewCache()
	cache.Put("Paris", model.EntityTypeLocation, lookup.Result{Validated: true, Confidence: 0.92})

	_, ok := cache.Get("Paris", model.EntityTypePerson)
	assert.False(t, ok, "same name under a different type is a distinct cache entry")

	hit, ok := cache.Get("Paris", model.EntityTypeLocation)
	assert.True(t, ok)
	assert.Equal(t, 0.92, hit.Confidence)
}
