package entity

import (
	"fmt"

	"github.com/newsmesh/cognition/internal/core/model"
)

func validateEntity(ent model.Entity) error {
	if ent.Name == "" {
		return fmt.Errorf("entity missing name")
	}
	if ent.Type == "" {
		return fmt.Errorf("entity %q missing type", ent.Name)
	}
	if ent.Confidence < 0 || ent.Confidence > 1 {
		return fmt.Errorf("entity %q confidence %v out of range", ent.Name, ent.Confidence)
	}
	return nil
}
