package database

import "testing"

// Handlers resolve duplicate inserts (follows, friendships, applications) by
// matching gorm.ErrDuplicatedKey, which the postgres driver only produces
// when error translation is enabled.
func TestGormConfigTranslatesErrors(t *testing.T) {
	cfg := gormConfig()
	if !cfg.TranslateError {
		t.Fatal("TranslateError disabled; unique violations would surface as driver errors")
	}
	if cfg.Logger == nil {
		t.Error("expected a configured logger")
	}
}
