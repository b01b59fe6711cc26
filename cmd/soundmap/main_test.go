package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundmap/domain/snapshot"
	apperrors "soundmap/pkg/errors"
)

type fakeGateway struct {
	deleted []int64
	err     error
}

func (f *fakeGateway) List(context.Context) ([]snapshot.Snapshot, error) { return nil, nil }
func (f *fakeGateway) Create(_ context.Context, s snapshot.Snapshot) (snapshot.Snapshot, error) {
	return s, nil
}
func (f *fakeGateway) Update(context.Context, int64, string) error { return nil }

func (f *fakeGateway) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestDeleteNetworkTwiceSucceeds(t *testing.T) {
	gateway := &fakeGateway{}
	require.NoError(t, deleteNetwork(context.Background(), gateway, 7))
	assert.Equal(t, []int64{7}, gateway.deleted)

	// Second delete comes back not-found; already gone still counts as deleted
	gateway.err = apperrors.NewNotFoundError("network")
	assert.NoError(t, deleteNetwork(context.Background(), gateway, 7))
}

func TestDeleteNetworkOtherErrorsSurface(t *testing.T) {
	gateway := &fakeGateway{err: apperrors.NewNetworkError("connection refused", nil)}
	err := deleteNetwork(context.Background(), gateway, 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
}
