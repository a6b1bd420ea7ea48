package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"diaconisas/internal/adapters/apiclient"
	"diaconisas/internal/adapters/wire"
	"diaconisas/internal/domain/member"
	"diaconisas/internal/domain/person"
)

// flakyServer fails the first failFirst attendance writes with 503, then accepts every write.
type flakyServer struct {
	mu        sync.Mutex
	members   []member.Member
	failFirst int
	posts     int
}

func (s *flakyServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case r.URL.Path == "/api/members":
		_ = json.NewEncoder(w).Encode(wire.FromMembers(s.members))
	case r.URL.Path == "/api/visitors":
		_ = json.NewEncoder(w).Encode([]wire.Friend{})
	case r.URL.Path == "/api/attendance" && r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode([]wire.AttendanceRecord{})
	case r.URL.Path == "/api/attendance" && r.Method == http.MethodPost:
		s.posts++
		var in wire.AttendanceInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if s.posts <= s.failFirst {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(wire.Error{Detail: "try later"})
			return
		}
		_ = json.NewEncoder(w).Encode(wire.AttendanceRecord{ID: in.PersonID, Tipo: person.Member, PersonID: in.PersonID, Fecha: in.Fecha, Presente: *in.Presente})
	default:
		http.NotFound(w, r)
	}
}

func TestCommit_ServerFailuresDoNotDropRemainingWrites(t *testing.T) {
	fs := &flakyServer{failFirst: 4}
	for i := 1; i <= 10; i++ {
		fs.members = append(fs.members, member.Member{ID: fmt.Sprint(i), Nombre: "Miembro", Apellido: fmt.Sprint(i)})
	}
	srv := httptest.NewServer(fs)
	defer srv.Close()

	client := apiclient.New(srv.URL, apiclient.WithToken("tok"))
	r := New(client, client, NewBatchWriter(1, 0))
	if _, err := r.LoadDay(context.Background(), "2024-03-10"); err != nil {
		t.Fatalf("LoadDay() error = %v", err)
	}
	for i := 1; i <= 10; i++ {
		if err := r.Toggle(person.Member, fmt.Sprint(i), true); err != nil {
			t.Fatal(err)
		}
	}

	summary, err := r.Commit(context.Background())
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if got := summary.String(); got != "6 of 10 saved" {
		t.Errorf("summary = %q, want %q", got, "6 of 10 saved")
	}
	if fs.posts != 10 {
		t.Errorf("writes reaching the server = %d, want 10", fs.posts)
	}
}
