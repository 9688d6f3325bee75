package platform

import (
	"errors"
	"testing"
)

func TestInstanceLockExcludesSecondHolder(t *testing.T) {
	const name = "pomoblock-lock-test"
	first, err := AcquireInstanceLock(name)
	if err != nil {
		t.Skipf("loopback port unavailable: %v", err)
	}

	_, err = AcquireInstanceLock(name)
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second acquire: want ErrAlreadyRunning, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}

	again, err := AcquireInstanceLock(name)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = again.Release()
}

func TestLockAddressIsStable(t *testing.T) {
	if lockAddress("a") != lockAddress("a") {
		t.Fatal("lock address should be deterministic")
	}
	var nilLock *InstanceLock
	if err := nilLock.Release(); err != nil {
		t.Fatalf("nil Release: %v", err)
	}
}
