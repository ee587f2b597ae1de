package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfinder-engine/internal/domain"
	"jobfinder-engine/internal/normalize"
	"jobfinder-engine/internal/source"
)

type fakeFetcher struct {
	recs []map[string]any
	err  error
}

func (f *fakeFetcher) Fetch(context.Context) ([]map[string]any, error) {
	return f.recs, f.err
}

func titles(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Title)
	}
	return out
}

func sampleRecords() []map[string]any {
	return []map[string]any{
		{"title": "Senior React Native Developer", "company": "Acme"},
		{"title": "Backend Developer", "company": "Globex"},
		{"title": "React Engineer", "company": "Initech"},
		{"title": "Data Analyst", "company": "Umbrella"},
	}
}

func readyDirectory(t *testing.T) *Directory {
	t.Helper()
	d := New(&fakeFetcher{recs: sampleRecords()}, nil, nil)
	st := d.Refresh(context.Background())
	require.Equal(t, StatusReady, st.Status)
	return d
}

func TestNew_StartsLoading(t *testing.T) {
	d := New(&fakeFetcher{}, nil, nil)
	st := d.State()
	assert.Equal(t, StatusLoading, st.Status)
	assert.Empty(t, st.Jobs)
	assert.Nil(t, st.FetchedAt)
}

func TestRefresh_Ready(t *testing.T) {
	d := readyDirectory(t)
	st := d.State()

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, []string{"Senior React Native Developer", "Backend Developer", "React Engineer", "Data Analyst"}, titles(st.Jobs))
	assert.Equal(t, "acme-senior-react-native-developer-0", st.Jobs[0].ID)
	assert.Equal(t, "umbrella-data-analyst-3", st.Jobs[3].ID)
	assert.NotNil(t, st.FetchedAt)
}

func TestRefresh_NotifiesLoadingThenResult(t *testing.T) {
	d := New(&fakeFetcher{recs: sampleRecords()}, nil, nil)
	var seen []Status
	d.OnChange = func(st State) { seen = append(seen, st.Status) }

	d.Refresh(context.Background())
	assert.Equal(t, []Status{StatusLoading, StatusReady}, seen)
}

func TestRefresh_ErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("status 500: %w", source.ErrStatus), MsgFetchFailed},
		{fmt.Errorf("invalid json: %w", source.ErrPayload), MsgParseFailed},
		{context.DeadlineExceeded, MsgFetchFailed + ": request timed out"},
		{errors.New("dial tcp: connection refused"), MsgFetchFailed + ": dial tcp: connection refused"},
	}
	for _, tt := range tests {
		d := New(&fakeFetcher{err: tt.err}, nil, nil)
		st := d.Refresh(context.Background())
		assert.Equal(t, StatusError, st.Status)
		assert.Equal(t, tt.want, st.Message)
		assert.Empty(t, st.Jobs)
		assert.Zero(t, st.Total)
	}
}

func TestRefresh_FailureDropsPreviousJobs(t *testing.T) {
	f := &fakeFetcher{recs: sampleRecords()}
	d := New(f, nil, nil)
	d.Refresh(context.Background())

	f.err = source.ErrStatus
	st := d.Refresh(context.Background())
	assert.Equal(t, StatusError, st.Status)
	assert.Empty(t, st.Jobs)

	_, ok := d.Job("acme-senior-react-native-developer-0")
	assert.False(t, ok)

	f.err = nil
	st = d.Refresh(context.Background())
	assert.Equal(t, StatusReady, st.Status)
	assert.Len(t, st.Jobs, 4)
}

func TestRefresh_ClearsQuery(t *testing.T) {
	d := readyDirectory(t)
	d.SetSearchText("react")

	st := d.Refresh(context.Background())
	assert.Equal(t, "", st.Query)
	assert.Len(t, st.Jobs, 4)
}

func TestSetSearchText_CaseInsensitiveTitleOnly(t *testing.T) {
	d := readyDirectory(t)

	for _, q := range []string{"senior", "REACT", "native dev"} {
		st, ok := d.SetSearchText(q)
		require.True(t, ok)
		assert.Contains(t, titles(st.Jobs), "Senior React Native Developer", "query %q", q)
		assert.NotContains(t, titles(st.Jobs), "Backend Developer", "query %q", q)
	}

	st, _ := d.SetSearchText("acme")
	assert.Empty(t, st.Jobs, "company is not searched")
}

func TestSetSearchText_ClearRestoresOrder(t *testing.T) {
	d := readyDirectory(t)
	full := d.State().Jobs

	d.SetSearchText("react")
	d.SetSearchText("engineer")
	st, _ := d.SetSearchText("")
	assert.Equal(t, full, st.Jobs)

	st, _ = d.SetSearchText("   ")
	assert.Equal(t, full, st.Jobs)
	assert.Equal(t, 4, st.Total)
}

func TestSetSearchText_NeverCompounds(t *testing.T) {
	d := readyDirectory(t)

	d.SetSearchText("react")
	st, _ := d.SetSearchText("developer")
	assert.Equal(t, []string{"Senior React Native Developer", "Backend Developer"}, titles(st.Jobs))
}

func TestSetSearchText_Idempotent(t *testing.T) {
	d := readyDirectory(t)

	once, _ := d.SetSearchText("react")
	twice, _ := d.SetSearchText("react")
	assert.Equal(t, once.Jobs, twice.Jobs)
}

func TestSetSearchText_IgnoredUnlessReady(t *testing.T) {
	d := New(&fakeFetcher{err: source.ErrStatus}, nil, nil)

	_, ok := d.SetSearchText("x")
	assert.False(t, ok, "loading")

	d.Refresh(context.Background())
	st, ok := d.SetSearchText("x")
	assert.False(t, ok, "error")
	assert.Equal(t, StatusError, st.Status)
	assert.Equal(t, "", st.Query)
}

func TestJob_LooksUpFullCollection(t *testing.T) {
	d := readyDirectory(t)
	d.SetSearchText("analyst")

	j, ok := d.Job("globex-backend-developer-1")
	require.True(t, ok)
	assert.Equal(t, "Backend Developer", j.Title)
}

func TestStateSnapshotIsolated(t *testing.T) {
	d := New(&fakeFetcher{recs: []map[string]any{
		{"title": "Senior React Native Developer", "company": "Acme", "logo": "https://x/a.png"},
	}}, nil, nil)
	d.Refresh(context.Background())

	st := d.State()
	st.Jobs[0].Title = "mutated"
	require.NotNil(t, st.Jobs[0].Logo)
	*st.Jobs[0].Logo = "mutated"

	again := d.State().Jobs[0]
	assert.Equal(t, "Senior React Native Developer", again.Title)
	require.NotNil(t, again.Logo)
	assert.Equal(t, "https://x/a.png", *again.Logo)

	j, _ := d.Job(again.ID)
	assert.Equal(t, "https://x/a.png", *j.Logo)
}

func TestRefresh_LoadingSnapshotHasNoJobs(t *testing.T) {
	d := readyDirectory(t)

	var loading *State
	d.OnChange = func(st State) {
		if st.Status == StatusLoading {
			loading = &st
		}
	}
	d.Refresh(context.Background())

	require.NotNil(t, loading)
	assert.Empty(t, loading.Jobs)
	assert.Zero(t, loading.Total)
	assert.Nil(t, loading.FetchedAt)
}

func TestFilterByTitle_DoesNotMutateInput(t *testing.T) {
	jobs := []domain.Job{{Title: "A"}, {Title: "B"}}
	out := FilterByTitle(jobs, "")
	out[0].Title = "changed"
	assert.Equal(t, "A", jobs[0].Title)
}

func TestRefresh_EndToEnd(t *testing.T) {
	t.Run("data payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[{"title":"X","companyName":"ACME","minSalary":50000,"maxSalary":70000,"currency":"USD","locations":["Remote"]}]}`))
		}))
		defer srv.Close()

		d := New(source.New(source.Config{URL: srv.URL}, nil, nil), nil, nil)
		st := d.Refresh(context.Background())
		require.Equal(t, StatusReady, st.Status)
		require.Len(t, st.Jobs, 1)
		assert.Equal(t, domain.Job{
			ID:       "acme-x-0",
			Title:    "X",
			Company:  "ACME",
			Salary:   "USD 50,000 - 70,000",
			Location: "Remote",
		}, st.Jobs[0])
	})

	t.Run("bare array with empty record", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{}]`))
		}))
		defer srv.Close()

		norm := normalize.New(normalize.Options{SalarySentinel: normalize.SalaryNotSpecified})
		d := New(source.New(source.Config{URL: srv.URL}, nil, nil), norm, nil)
		st := d.Refresh(context.Background())
		require.Len(t, st.Jobs, 1)
		assert.Equal(t, "unknown-company-no-title-0", st.Jobs[0].ID)
		assert.Equal(t, normalize.SalaryNotSpecified, st.Jobs[0].Salary)
		assert.Equal(t, normalize.LocationNotSpecified, st.Jobs[0].Location)
	})

	t.Run("http 500", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		d := New(source.New(source.Config{URL: srv.URL}, nil, nil), nil, nil)
		st := d.Refresh(context.Background())
		assert.Equal(t, StatusError, st.Status)
		assert.Equal(t, "Failed to fetch jobs", st.Message)
		assert.Empty(t, st.Jobs)
	})
}
