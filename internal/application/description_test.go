package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crop-doctor/internal/domain/entity"
)

func TestCandidateTerms(t *testing.T) {
	cases := map[string][]string{
		"Foo bar blight":       {"Foo bar blight", "Foo bar blight disease", "bar blight", "Foo"},
		"Tomato___Late_blight": {"Tomato Late blight", "Tomato Late blight disease", "Late blight", "Tomato"},
		"Panama disease":       {"Panama disease", "Panama disease disease", "Panama"},
		"Clubroot infection":   {"Clubroot infection", "Clubroot infection disease", "Clubroot"},
		"Rust":                 {"Rust", "Rust disease"},
		"  ":                   nil,
	}
	for name, want := range cases {
		require.Equal(t, want, CandidateTerms(name), "name %q", name)
	}
}

func TestDescriptionResolver_FirstNonEmptyWins(t *testing.T) {
	p := new(MockSummaryProvider)
	p.On("Lookup", mock.Anything, "Foo bar blight").Return(nil, errors.New("connection refused")).Once()
	p.On("Lookup", mock.Anything, "Foo bar blight disease").Return(&entity.Summary{Title: "x", Extract: "  "}, nil).Once()
	p.On("Lookup", mock.Anything, "bar blight").Return(&entity.Summary{
		Title:   "Bar blight",
		Extract: "Bar blight is a disease of bars.",
		URL:     "https://en.wikipedia.org/wiki/Bar_blight",
	}, nil).Once()

	r := NewDescriptionResolver(p, time.Second)
	d := r.Describe(context.Background(), "Foo bar blight")

	require.True(t, d.Found)
	require.Equal(t, "Bar blight is a disease of bars.", d.Text)
	require.Equal(t, "bar blight", d.Term)
	require.Equal(t, "Bar blight", d.Title)
	require.Equal(t, "https://en.wikipedia.org/wiki/Bar_blight", d.URL)

	p.AssertExpectations(t)
	p.AssertNotCalled(t, "Lookup", mock.Anything, "Foo")
}

func TestDescriptionResolver_AllFailReturnsSentinel(t *testing.T) {
	p := new(MockSummaryProvider)
	p.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("network unreachable"))

	r := NewDescriptionResolver(p, time.Second)
	require.Equal(t, entity.NoDescription, r.ResolveDescription(context.Background(), "Foo bar blight"))
	p.AssertNumberOfCalls(t, "Lookup", 4)
}

func TestDescriptionResolver_NotFoundEverywhere(t *testing.T) {
	p := new(MockSummaryProvider)
	p.On("Lookup", mock.Anything, mock.Anything).Return(nil, nil)

	r := NewDescriptionResolver(p, time.Second)
	d := r.Describe(context.Background(), "Rust")
	require.False(t, d.Found)
	require.Equal(t, entity.NoDescription, d.Text)
	p.AssertNumberOfCalls(t, "Lookup", 2)
}

func TestDescriptionResolver_EmptyNameMakesNoCalls(t *testing.T) {
	p := new(MockSummaryProvider)

	r := NewDescriptionResolver(p, time.Second)
	require.Equal(t, entity.NoDescription, r.ResolveDescription(context.Background(), ""))
	p.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestDescriptionResolver_EachLookupIsTimeBounded(t *testing.T) {
	p := new(MockSummaryProvider)
	p.On("Lookup", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	r := NewDescriptionResolver(p, 10*time.Millisecond)
	start := time.Now()
	require.Equal(t, entity.NoDescription, r.ResolveDescription(context.Background(), "Foo bar blight"))
	require.Less(t, time.Since(start), 2*time.Second)
	p.AssertNumberOfCalls(t, "Lookup", 4)
}

func TestDescriptionResolver_StopsWhenCallerCancels(t *testing.T) {
	p := new(MockSummaryProvider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewDescriptionResolver(p, time.Second)
	require.Equal(t, entity.NoDescription, r.ResolveDescription(ctx, "Foo bar blight"))
	p.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestDescriptionResolver_ProviderPanicDegrades(t *testing.T) {
	p := new(MockSummaryProvider)
	p.On("Lookup", mock.Anything, "Rust").Panic("boom")
	p.On("Lookup", mock.Anything, "Rust disease").Return(&entity.Summary{Extract: "Rusts are fungi."}, nil)

	r := NewDescriptionResolver(p, time.Second)
	require.Equal(t, "Rusts are fungi.", r.ResolveDescription(context.Background(), "Rust"))
}

func TestDescriptionResolver_NilProvider(t *testing.T) {
	r := NewDescriptionResolver(nil, 0)
	require.Equal(t, entity.NoDescription, r.ResolveDescription(context.Background(), "Rust"))
}

func TestDescriptionResolver_Idempotent(t *testing.T) {
	p := new(MockSummaryProvider)
	p.On("Lookup", mock.Anything, "Rust").Return(&entity.Summary{Title: "Rust (fungus)", Extract: "Rusts are fungi."}, nil)

	r := NewDescriptionResolver(p, time.Second)
	first := r.Describe(context.Background(), "Rust")
	require.Equal(t, first, r.Describe(context.Background(), "Rust"))
}
