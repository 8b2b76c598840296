package database

import (
	"context"
	"testing"
)

type queryItem struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name  string `gorm:"column:name"`
	Score int    `gorm:"column:score"`
}

func (queryItem) TableName() string { return "query_items" }

func queryTestDB(t *testing.T) Database {
	t.Helper()
	ctx := context.Background()
	db, err := NewDatabase(ctx, "sqlite:///:memory:")
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.GORM().AutoMigrate(&queryItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	items := []queryItem{
		{Name: "alpha", Score: 10},
		{Name: "bravo", Score: 20},
		{Name: "charlie", Score: 30},
	}
	if err := db.Session(ctx).Create(&items).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func TestQuery_Equal(t *testing.T) {
	db := queryTestDB(t)
	ctx := context.Background()

	var got []queryItem
	q := NewQuery().Equal("name", "bravo")
	if err := q.Apply(db.Session(ctx)).Find(&got).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].Score != 20 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestQuery_BetweenAndOrder(t *testing.T) {
	db := queryTestDB(t)
	ctx := context.Background()

	var got []queryItem
	q := NewQuery().Between("score", 10, 20).OrderDesc("score")
	if err := q.Apply(db.Session(ctx)).Find(&got).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Name != "bravo" || got[1].Name != "alpha" {
		t.Errorf("wrong order: %+v", got)
	}
}

func TestQuery_LimitOffset(t *testing.T) {
	db := queryTestDB(t)
	ctx := context.Background()

	var got []queryItem
	q := NewQuery().OrderAsc("score").Limit(1).Offset(1)
	if err := q.Apply(db.Session(ctx)).Find(&got).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].Name != "bravo" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestQuery_ApplyConditionsIgnoresPagination(t *testing.T) {
	db := queryTestDB(t)
	ctx := context.Background()

	var count int64
	q := NewQuery().GreaterThanOrEqual("score", 20).Limit(1)
	if err := q.ApplyConditions(db.Session(ctx).Model(&queryItem{})).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 (limit must not apply)", count)
	}
}

func TestQuery_In(t *testing.T) {
	db := queryTestDB(t)
	ctx := context.Background()

	var got []queryItem
	q := NewQuery().In("name", []string{"alpha", "charlie"}).OrderAsc("name")
	if err := q.Apply(db.Session(ctx)).Find(&got).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 rows, got %d", len(got))
	}
}
