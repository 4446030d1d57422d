package redis

import (
	"errors"
	"testing"
)

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

func TestIsRedisErr_PlainErrorsNeverMatch(t *testing.T) {
	// Only server-side errors classify, even when the text matches.
	if isRedisErr(errors.New("Index already exists"), "index already exists") {
		t.Error("plain error must not classify as a redis error")
	}
	if isRedisErr(nil, "index already exists") {
		t.Error("nil error must not classify")
	}
}
