package gallery

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/photorama/internal/domain"
)

func photos(t *testing.T, ids ...string) []domain.Photo {
	t.Helper()
	out := make([]domain.Photo, 0, len(ids))
	for _, id := range ids {
		u, _ := url.Parse(fmt.Sprintf("https://img.example.com/%s.jpg", id))
		p, err := domain.NewPhoto(id, "t"+id, u, time.Time{})
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestPhotoListReplaceAndClear(t *testing.T) {
	l := NewPhotoList()
	assert.Zero(t, l.Count())
	assert.Zero(t, l.Version())

	l.Replace(domain.MethodRecentPhotos, photos(t, "a", "b", "c"))
	assert.Equal(t, 3, l.Count())
	assert.Equal(t, "b", l.ItemAt(1).ID())
	assert.Equal(t, uint64(1), l.Version())

	l.Clear()
	assert.Zero(t, l.Count())
	assert.Equal(t, uint64(2), l.Version())
	assert.Empty(t, l.Snapshot().Method)
}

func TestPhotoListCurrentIndexOf(t *testing.T) {
	l := NewPhotoList()
	ps := photos(t, "a", "b", "c")
	l.Replace(domain.MethodInterestingPhotos, ps)

	i, ok := l.CurrentIndexOf(ps[2])
	require.True(t, ok)
	assert.Equal(t, 2, i)

	l.Replace(domain.MethodRecentPhotos, photos(t, "c", "x"))
	i, ok = l.CurrentIndexOf(ps[2])
	require.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = l.CurrentIndexOf(ps[0])
	assert.False(t, ok)
}

func TestPhotoListFind(t *testing.T) {
	l := NewPhotoList()
	l.Replace(domain.MethodRecentPhotos, photos(t, "a", "b"))

	p, ok := l.Find("b")
	require.True(t, ok)
	assert.Equal(t, "tb", p.Title())

	_, ok = l.Find("z")
	assert.False(t, ok)
}

func TestPhotoListSnapshotIsCopy(t *testing.T) {
	l := NewPhotoList()
	in := photos(t, "a", "b")
	l.Replace(domain.MethodRecentPhotos, in)
	in[0] = photos(t, "z")[0]

	snap := l.Snapshot()
	assert.Equal(t, "a", snap.Photos[0].ID())
	assert.Equal(t, domain.MethodRecentPhotos, snap.Method)

	snap.Photos[1] = in[0]
	assert.Equal(t, "b", l.ItemAt(1).ID())
}

func TestPhotoListItemAtOutOfRange(t *testing.T) {
	l := NewPhotoList()
	assert.Panics(t, func() { l.ItemAt(0) })
}
