package collection

import (
	"errors"
	"reflect"
	"runtime"
	"testing"

	"github.com/danmuck/capkit/internal/delegate"
	"github.com/danmuck/capkit/internal/testutil/testlog"
	"github.com/danmuck/capkit/internal/variance"
)

func TestCountingSetRoundTrip(t *testing.T) {
	testlog.Start(t)
	inner := NewHashSet[int]()
	s, err := NewCountingSet[int](inner)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := s.AddAll([]int{1, 1, 2}); err != nil {
		t.Fatalf("addAll: %v", err)
	}
	size, err := s.Size()
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if size != 2 || inner.Size() != 2 {
		t.Fatalf("size: got %d (inner %d) want 2", size, inner.Size())
	}
	if s.Added() != 3 {
		t.Fatalf("added: got %d want 3", s.Added())
	}
}

func TestCountingSetForwardsEverythingElse(t *testing.T) {
	testlog.Start(t)
	s, err := NewCountingSet[string](nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if ok, _ := s.Add("a"); !ok {
		t.Fatalf("first add should change the set")
	}
	if ok, _ := s.Add("a"); ok {
		t.Fatalf("duplicate add should not change the set")
	}
	_, _ = s.AddAll([]string{"b", "c"})

	if ok, _ := s.Contains("b"); !ok {
		t.Fatalf("contains b")
	}
	if ok, _ := s.ContainsAll([]string{"a", "c"}); !ok {
		t.Fatalf("containsAll a,c")
	}
	if ok, _ := s.Remove("a"); !ok {
		t.Fatalf("remove a")
	}
	vals, err := s.Values()
	if err != nil || !reflect.DeepEqual(vals, []string{"b", "c"}) {
		t.Fatalf("values: %v err=%v", vals, err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if empty, _ := s.IsEmpty(); !empty {
		t.Fatalf("expected empty after clear")
	}
	if s.Added() != 4 {
		t.Fatalf("added: got %d want 4", s.Added())
	}

	d := s.Delegate()
	if !reflect.DeepEqual(d.Overridden(), []string{OpAdd, OpAddAll}) {
		t.Fatalf("overridden: %v", d.Overridden())
	}
	if len(d.Forwarded()) != len(Capability().Operations)-2 {
		t.Fatalf("forwarded: %v", d.Forwarded())
	}
}

func TestCountingSetOverArrayList(t *testing.T) {
	testlog.Start(t)
	s, err := NewCountingSet[int](NewArrayList[int]())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, _ = s.AddAll([]int{1, 1, 2})
	size, _ := s.Size()
	if size != 3 || s.Added() != 3 {
		t.Fatalf("array list keeps duplicates: size=%d added=%d", size, s.Added())
	}
}

func TestCountingSetBadArgumentsDoNotCount(t *testing.T) {
	testlog.Start(t)
	s, err := NewCountingSet[int](nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := s.Delegate().Invoke(OpAdd, "one"); !errors.Is(err, delegate.ErrBadArguments) {
		t.Fatalf("expected ErrBadArguments, got %v", err)
	}
	if s.Added() != 0 {
		t.Fatalf("rejected call was counted")
	}
}

func TestReadOnlyBackingRequiresMutatorOverrides(t *testing.T) {
	testlog.Start(t)
	ro := AsReadOnlyBacking[int](NewHashSet(1, 2))

	_, err := delegate.New(Capability(), ro, nil)
	var inc *delegate.IncompleteInterfaceError
	if !errors.As(err, &inc) {
		t.Fatalf("expected *IncompleteInterfaceError, got %v", err)
	}
	want := []string{OpAdd, OpAddAll, OpClear, OpRemove}
	if !reflect.DeepEqual(inc.Missing, want) {
		t.Fatalf("missing: got %v want %v", inc.Missing, want)
	}

	refuse := func(*delegate.Delegate, delegate.Backing, delegate.Args) (delegate.Result, error) {
		return false, nil
	}
	d, err := delegate.New(Capability(), ro, delegate.Overrides{
		OpAdd: refuse, OpAddAll: refuse, OpRemove: refuse, OpClear: refuse,
	})
	if err != nil {
		t.Fatalf("fully covered delegate: %v", err)
	}
	if res, _ := d.Invoke(OpSize); res != 2 {
		t.Fatalf("size through read-only backing: %v", res)
	}
	if res, _ := d.Invoke(OpAdd, 3); res != false {
		t.Fatalf("override should refuse add: %v", res)
	}
}

func TestCountingByEmbedding(t *testing.T) {
	testlog.Start(t)
	c := NewCounting[int](nil)
	var mc MutableCollection[int] = c
	mc.AddAll([]int{1, 1, 2})
	mc.Add(3)
	if mc.Size() != 3 || c.Added() != 4 {
		t.Fatalf("embedding: size=%d added=%d", mc.Size(), c.Added())
	}
	if !mc.Contains(2) || c.Inner().Size() != 3 {
		t.Fatalf("forwarded read failed")
	}
}

func TestHashSetRemoveKeepsOrder(t *testing.T) {
	testlog.Start(t)
	s := NewHashSet(1, 2, 3, 4)
	s.Remove(2)
	if !reflect.DeepEqual(Values[int](s), []int{1, 3, 4}) {
		t.Fatalf("values: %v", Values[int](s))
	}
	if !s.Contains(4) || s.Contains(2) {
		t.Fatalf("index out of sync after remove")
	}
	s.Add(2)
	if !reflect.DeepEqual(Values[int](s), []int{1, 3, 4, 2}) {
		t.Fatalf("values after re-add: %v", Values[int](s))
	}
	if s.Remove(9) {
		t.Fatalf("removing a missing element reported a change")
	}
}

func TestCopyIntoCollectionSink(t *testing.T) {
	testlog.Start(t)
	src := variance.NewList(1, 2, 2, 3)
	anySet := NewCounting[any](nil)

	n := variance.Copy(src.Producer(), Sink[any](anySet), func(v int) any { return v })
	if n != 4 {
		t.Fatalf("copied: %d", n)
	}
	if anySet.Size() != 3 || anySet.Added() != 4 {
		t.Fatalf("sink: size=%d added=%d", anySet.Size(), anySet.Added())
	}
	snap := Snapshot[any](anySet)
	if snap.Len() != 3 || snap.At(2) != 3 {
		t.Fatalf("snapshot: %v", snap.Values())
	}
	if v := Sink[any](anySet).AtAny(0); v != 1 {
		t.Fatalf("AtAny(0): %v", v)
	}
}

func TestSinkAtAnyIndexesSnapshot(t *testing.T) {
	testlog.Start(t)
	set := NewHashSet("a", "b", "c")
	s := Sink[string](set)
	for i, want := range []string{"a", "b", "c"} {
		if got := s.AtAny(i); got != want {
			t.Fatalf("AtAny(%d): got %v want %s", i, got, want)
		}
	}

	defer func() {
		r := recover()
		if _, ok := r.(runtime.Error); !ok {
			t.Fatalf("expected a runtime bounds error, got %v", r)
		}
	}()
	s.AtAny(3)
}
