package vcs

import "context"

// MockLister implements RemoteLister for testing.
type MockLister struct {
	LsRemoteFunc func(ctx context.Context, remote, ref string) (string, error)
}

// NewMockLister creates a new MockLister.
func NewMockLister() *MockLister {
	return &MockLister{}
}

// LsRemote returns the configured ls-remote output.
func (m *MockLister) LsRemote(ctx context.Context, remote, ref string) (string, error) {
	if m.LsRemoteFunc != nil {
		return m.LsRemoteFunc(ctx, remote, ref)
	}
	return "", nil
}
