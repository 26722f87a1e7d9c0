package batch

import "testing"

func TestQueueAppendAndLen(t *testing.T) {
	var q Queue[int]
	for i := 0; i < blockCapacity*2+5; i++ {
		q.Append(i)
	}
	if got := q.Len(); got != blockCapacity*2+5 {
		t.Fatalf("Len() = %d, want %d", got, blockCapacity*2+5)
	}
}

func TestQueueAtSpansBlocks(t *testing.T) {
	var q Queue[int]
	const n = blockCapacity + 10
	for i := 0; i < n; i++ {
		q.Append(i * 3)
	}
	for i := 0; i < n; i++ {
		v, ok := q.At(i)
		if !ok || v != i*3 {
			t.Fatalf("At(%d) = %d, %v; want %d, true", i, v, ok, i*3)
		}
	}
	if _, ok := q.At(n); ok {
		t.Fatalf("At(%d) should be out of range", n)
	}
	if _, ok := q.At(-1); ok {
		t.Fatalf("At(-1) should be out of range")
	}
}

func TestQueueEachOrdersAcrossBlocks(t *testing.T) {
	var q Queue[string]
	want := []string{"a", "b", "c"}
	for i := 0; i < blockCapacity-1; i++ {
		q.Append("pad")
	}
	for _, s := range want {
		q.Append(s)
	}
	var got []string
	q.Each(func(_ int, v string) {
		if v != "pad" {
			got = append(got, v)
		}
	})
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQueueReset(t *testing.T) {
	var q Queue[int]
	q.Append(1)
	q.Append(2)
	q.Reset()
	if q.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", q.Len())
	}
	q.Append(9)
	v, ok := q.At(0)
	if !ok || v != 9 {
		t.Fatalf("queue unusable after Reset: At(0) = %d, %v", v, ok)
	}
}
