package store

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return New(Options{})
}

func TestGetSetRoundTrip(t *testing.T) {
	s := newTestStore()
	s.Set("name", "FOO BAR")
	val, found, err := s.Get("name")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "FOO BAR", val)
}

func TestGetMissingKeyIsNil(t *testing.T) {
	s := newTestStore()
	_, found, err := s.Get("bar")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestIncrFromExistingDecimal(t *testing.T) {
	s := newTestStore()
	s.Set("counter", "9999")
	got, err := s.IncrBy("counter", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 10000, got)

	got, err = s.IncrBy("counter", -3000)
	require.NoError(t, err)
	assert.EqualValues(t, 7000, got)
}

func TestIncrOnMissingKeyTreatsAsZero(t *testing.T) {
	s := newTestStore()
	got, err := s.IncrBy("missing", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got)
}

func TestIncrOverflowLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore()
	s.Set("c", strconv.FormatInt(math.MaxInt64, 10))
	_, err := s.IncrBy("c", 1)
	require.Error(t, err)
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, ErrIntegerOverflow, storeErr.Kind)

	val, found, err := s.Get("c")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, strconv.FormatInt(math.MaxInt64, 10), val)
}

func TestIncrNonDecimalIsNotAnInteger(t *testing.T) {
	s := newTestStore()
	s.Set("k", "notanumber")
	_, err := s.IncrBy("k", 1)
	require.Error(t, err)
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, ErrNotAnInteger, storeErr.Kind)
}

func TestListRoundTrip(t *testing.T) {
	for _, backing := range []ListBacking{BackingVecDeque, BackingLinkedList} {
		s := New(Options{ListBacking: backing})
		for _, v := range []string{"b", "a"} {
			_, err := s.LPush("letters", v)
			require.NoError(t, err)
		}
		n, err := s.RPush("letters", "c")
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		var popped []string
		for i := 0; i < 3; i++ {
			v, found, err := s.LPop("letters")
			require.NoError(t, err)
			require.True(t, found)
			popped = append(popped, v)
		}
		assert.Equal(t, []string{"a", "b", "c"}, popped)
		assert.False(t, s.Exists("letters"))
	}
}

func TestLPushLPopMRoundTrip(t *testing.T) {
	s := newTestStore()
	members := []string{"x1", "x2", "x3"}
	for _, m := range members {
		_, err := s.LPush("k", m)
		require.NoError(t, err)
	}
	var got []string
	for i := 0; i < len(members); i++ {
		v, found, err := s.LPop("k")
		require.NoError(t, err)
		require.True(t, found)
		got = append(got, v)
	}
	assert.Equal(t, []string{"x3", "x2", "x1"}, got)
}

func TestLRangeNegativeIndices(t *testing.T) {
	s := newTestStore()
	for _, v := range []string{"a", "b", "c", "d"} {
		_, err := s.RPush("l", v)
		require.NoError(t, err)
	}
	vals, err := s.LRange("l", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, vals)

	vals, err = s.LRange("l", -2, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, vals)

	vals, err = s.LRange("l", 2, 1)
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestSAddIdempotentReturnsCardinality(t *testing.T) {
	s := newTestStore()
	n, err := s.SAdd("colors", "red")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.SAdd("colors", "red")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.SAdd("colors", "blue")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	members, err := s.SMembers("colors")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"red", "blue"}, members)
}

func TestSRemEmptiesKey(t *testing.T) {
	s := newTestStore()
	_, err := s.SAdd("k", "only")
	require.NoError(t, err)
	n, err := s.SRem("k", "only")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, s.Exists("k"))
}

func TestHSetAlwaysReturnsOne(t *testing.T) {
	s := newTestStore()
	n, err := s.HSet("user:321", "name", "John Smith")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.HSet("user:321", "name", "Jane Smith")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	val, found, err := s.HGet("user:321", "name")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Jane Smith", val)

	_, found, err = s.HGet("user:321", "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHDelCountsAndEmpties(t *testing.T) {
	s := newTestStore()
	_, err := s.HSet("h", "a", "1")
	require.NoError(t, err)
	_, err = s.HSet("h", "b", "2")
	require.NoError(t, err)

	n, err := s.HDel("h", "a", "missing")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, s.Exists("h"))

	n, err = s.HDel("h", "b")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, s.Exists("h"))
}

func TestWrongTypeLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore()
	s.Set("k", "x")

	_, err := s.LPush("k", "y")
	require.Error(t, err)
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, ErrWrongType, storeErr.Kind)

	_, err = s.SAdd("k", "y")
	require.Error(t, err)

	_, err = s.HSet("k", "f", "y")
	require.Error(t, err)

	val, found, getErr := s.Get("k")
	require.NoError(t, getErr)
	assert.True(t, found)
	assert.Equal(t, "x", val)
}

func TestEmptyContainerDeletion(t *testing.T) {
	s := newTestStore()
	_, err := s.LPush("k", "a")
	require.NoError(t, err)
	_, found, err := s.LPop("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, s.Exists("k"))
}

func TestDel(t *testing.T) {
	s := newTestStore()
	assert.False(t, s.Del("missing"))
	s.Set("k", "v")
	assert.True(t, s.Del("k"))
	assert.False(t, s.Exists("k"))
}
