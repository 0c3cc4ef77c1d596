package repository

import (
	"testing"
)

func TestDbDialectNameDefaultsToSqlite(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("nil db dialect want sqlite got %s", got)
	}
	db := newRepositoryTestDB(t)
	if got := dbDialectName(db); got != "sqlite" {
		t.Fatalf("sqlite db dialect want sqlite got %s", got)
	}
}

func TestDayBucketExpr(t *testing.T) {
	db := newRepositoryTestDB(t)
	got := dayBucketExpr(db, "created_at")
	if got != "strftime('%Y-%m-%d', created_at)" {
		t.Fatalf("sqlite day bucket expr unexpected: %s", got)
	}
	if got := dayBucketExpr(nil, "orders.created_at"); got != "strftime('%Y-%m-%d', orders.created_at)" {
		t.Fatalf("nil db day bucket expr unexpected: %s", got)
	}
}

func TestLikeOperator(t *testing.T) {
	db := newRepositoryTestDB(t)
	if got := likeOperator(db); got != "LIKE" {
		t.Fatalf("sqlite like operator want LIKE got %s", got)
	}
}
