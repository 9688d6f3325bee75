package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceLock keeps a second enforcer from starting on the same machine.
type InstanceLock struct {
	listener net.Listener
}

// AcquireInstanceLock binds a loopback port derived from the app name.
func AcquireInstanceLock(appName string) (*InstanceLock, error) {
	address := lockAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, address)
	}
	return &InstanceLock{listener: listener}, nil
}

// Release frees the lock. It is safe to call on a nil lock.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	return err
}

func lockAddress(appName string) string {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	port := minPort + int(hash.Sum32()%uint32(maxPort-minPort+1))
	return fmt.Sprintf("127.0.0.1:%d", port)
}
