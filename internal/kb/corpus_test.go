package kb

import "testing"

func testAlphabet(t *testing.T) *Alphabet {
	t.Helper()
	path := writeTempFile(t, "en.lang", "  eEtThHnNaA\n")
	a, err := LoadAlphabet(path)
	if err != nil {
		t.Fatalf("LoadAlphabet: %v", err)
	}
	return a
}

// TestCollectorSpaceNotCounted verifies that space (index 0) never
// contributes to mono, n-gram, or skipgram counts -- only the sliding
// history advances.
func TestCollectorSpaceNotCounted(t *testing.T) {
	a := testAlphabet(t)
	col := NewCollector(a)
	col.FeedString(" e")

	idx := a.Encode('e')
	if got := col.Counters().Mono[idx]; got != 1 {
		t.Errorf("Mono[e] = %d, want 1", got)
	}
	spaceIdx := a.Encode(' ')
	if spaceIdx != 0 {
		t.Fatalf("expected space to encode to index 0, got %d", spaceIdx)
	}
	if got := col.Counters().Mono[0]; got != 0 {
		t.Errorf("Mono[space] = %d, want 0 (space is never counted)", got)
	}
}

// TestCollectorUnknownRuneNotCounted verifies a rune outside the alphabet
// (Encode returns -1) neither increments counts nor crashes the collector,
// and correctly breaks n-gram continuity.
func TestCollectorUnknownRuneNotCounted(t *testing.T) {
	a := testAlphabet(t)
	col := NewCollector(a)
	col.FeedString("e" + string(rune('z')) + "e")

	idxE := a.Encode('e')
	if got := col.Counters().Mono[idxE]; got != 2 {
		t.Errorf("Mono[e] = %d, want 2", got)
	}
	// z sits between the two e's, so they must not form a bigram (e, e).
	if got := col.Counters().Bi[flattenIdx(a.Len(), idxE, idxE)]; got != 0 {
		t.Errorf("Bi[e,e] = %d, want 0 (z breaks continuity)", got)
	}
}

// TestCollectorBigramDirection verifies Bi is indexed (older, newer):
// feeding "et" increments Bi[e][t], not Bi[t][e].
func TestCollectorBigramDirection(t *testing.T) {
	a := testAlphabet(t)
	col := NewCollector(a)
	col.FeedString("et")

	e, tIdx := a.Encode('e'), a.Encode('t')
	k := a.Len()
	if got := col.Counters().Bi[flattenIdx(k, e, tIdx)]; got != 1 {
		t.Errorf("Bi[e,t] = %d, want 1", got)
	}
	if got := col.Counters().Bi[flattenIdx(k, tIdx, e)]; got != 0 {
		t.Errorf("Bi[t,e] = %d, want 0 (direction matters)", got)
	}
}

// TestCollectorTrigramAndQuadgram verifies trigram and quadgram counts
// accumulate in oldest-to-newest order once enough history exists.
func TestCollectorTrigramAndQuadgram(t *testing.T) {
	a := testAlphabet(t)
	col := NewCollector(a)
	col.FeedString("neta")

	n, e, tIdx, av := a.Encode('n'), a.Encode('e'), a.Encode('t'), a.Encode('a')
	k := a.Len()
	if got := col.Counters().Tri[flattenIdx(k, n, e, tIdx)]; got != 1 {
		t.Errorf("Tri[n,e,t] = %d, want 1", got)
	}
	if got := col.Counters().Quad[flattenIdx(k, n, e, tIdx, av)]; got != 1 {
		t.Errorf("Quad[n,e,t,a] = %d, want 1", got)
	}
}

// abAlphabet builds the 3-symbol alphabet {_, A, B} used by the "ABAB"
// worked example.
func abAlphabet(t *testing.T) *Alphabet {
	t.Helper()
	path := writeTempFile(t, "ab.lang", "  AaBb\n")
	a, err := LoadAlphabet(path)
	if err != nil {
		t.Fatalf("LoadAlphabet: %v", err)
	}
	return a
}

// TestCollectorABABWorkedExample verifies the collector against the
// "ABAB" worked example: mono[A]=2, mono[B]=2; bi[A,B]=2, bi[B,A]=1;
// tri[A,B,A]=1, tri[B,A,B]=1; quad[A,B,A,B]=1; skip[1,A,A]=1,
// skip[1,B,B]=1, skip[2,A,B]=1; all others zero.
//
// skip[2,B,A] is the one entry that can never fire for this input: a
// skip-2 pair spans 3 positions, and with only 4 characters fed (indices
// 0..3) the only index pair 3 apart is (0,3) = (A,B). There is no pair
// (B,...,A) 3 positions apart in a 4-character stream, so skip[2,B,A]
// stays 0 regardless of implementation -- verified directly against
// read_corpus's mem[]/iterate() trace in the original sources.
func TestCollectorABABWorkedExample(t *testing.T) {
	a := abAlphabet(t)
	col := NewCollector(a)
	col.FeedString("ABAB")

	A, B := a.Encode('A'), a.Encode('B')
	k := a.Len()
	c := col.Counters()

	if got := c.Mono[A]; got != 2 {
		t.Errorf("Mono[A] = %d, want 2", got)
	}
	if got := c.Mono[B]; got != 2 {
		t.Errorf("Mono[B] = %d, want 2", got)
	}
	if got := c.Bi[flattenIdx(k, A, B)]; got != 2 {
		t.Errorf("Bi[A,B] = %d, want 2", got)
	}
	if got := c.Bi[flattenIdx(k, B, A)]; got != 1 {
		t.Errorf("Bi[B,A] = %d, want 1", got)
	}
	if got := c.Tri[flattenIdx(k, A, B, A)]; got != 1 {
		t.Errorf("Tri[A,B,A] = %d, want 1", got)
	}
	if got := c.Tri[flattenIdx(k, B, A, B)]; got != 1 {
		t.Errorf("Tri[B,A,B] = %d, want 1", got)
	}
	if got := c.Quad[flattenIdx(k, A, B, A, B)]; got != 1 {
		t.Errorf("Quad[A,B,A,B] = %d, want 1", got)
	}
	if got := c.Skip[0][flattenIdx(k, A, A)]; got != 1 {
		t.Errorf("Skip[gap=1][A,A] = %d, want 1", got)
	}
	if got := c.Skip[0][flattenIdx(k, B, B)]; got != 1 {
		t.Errorf("Skip[gap=1][B,B] = %d, want 1", got)
	}
	if got := c.Skip[1][flattenIdx(k, A, B)]; got != 1 {
		t.Errorf("Skip[gap=2][A,B] = %d, want 1", got)
	}
	if got := c.Skip[1][flattenIdx(k, B, A)]; got != 0 {
		t.Errorf("Skip[gap=2][B,A] = %d, want 0 (no such pair exists 3 positions apart in a 4-character stream)", got)
	}
}

// TestCollectorHistoryResetPerInstance verifies a fresh Collector starts
// with an all-invalid history so no spurious n-grams form across streams.
func TestCollectorHistoryResetPerInstance(t *testing.T) {
	a := testAlphabet(t)
	col1 := NewCollector(a)
	col1.FeedString("eta")

	col2 := NewCollector(a)
	col2.FeedString("e")

	e := a.Encode('e')
	if got := col2.Counters().Mono[e]; got != 1 {
		t.Errorf("fresh collector Mono[e] = %d, want 1 (no leakage from another collector)", got)
	}
}
