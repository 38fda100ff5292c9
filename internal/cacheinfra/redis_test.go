package cacheinfra

import "testing"

func TestRedisConfig_Validate(t *testing.T) {
	valid := RedisConfig{Addr: "localhost:6379"}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid config to pass but got: %v", err)
	}

	if err := (RedisConfig{}).Validate(); err == nil {
		t.Error("expected error for empty addr but got nil")
	}
	if err := (RedisConfig{Addr: "localhost:6379", DB: -1}).Validate(); err == nil {
		t.Error("expected error for negative db but got nil")
	}
}
