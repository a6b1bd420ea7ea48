package web

import (
	"net/http"

	"github.com/gorilla/mux"

	friendStore "diaconisas/internal/adapters/storage/friend"
	memberStore "diaconisas/internal/adapters/storage/member"
	"diaconisas/internal/adapters/wire"
	"diaconisas/internal/application/listutil"
	"diaconisas/internal/application/orchestrators"
)

// deletedResponse acknowledges a hard delete.
type deletedResponse struct {
	Message string `json:"message"`
}

// handleListMembers handles GET /api/members
func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	lw := listutil.Parse(r.URL.Query())
	members, err := s.stores.MemberStore.List(r.Context(), memberStore.ListFilter{Search: lw.Search, Limit: lw.Limit, Offset: lw.Offset})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromMembers(members))
}

// handleGetMember handles GET /api/members/{id}
func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.stores.MemberStore.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromMember(m))
}

// handleCreateMember handles POST /api/members
func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	s.saveMember(w, r, "", http.StatusCreated)
}

// handleUpdateMember handles PUT /api/members/{id}
func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	s.saveMember(w, r, mux.Vars(r)["id"], http.StatusOK)
}

func (s *Server) saveMember(w http.ResponseWriter, r *http.Request, id string, status int) {
	var in wire.MemberInput
	if err := decodeValid(r, &in); err != nil {
		fail(w, err)
		return
	}

	m, err := orchestrators.ExecuteSaveMember(r.Context(), orchestrators.SaveMemberInput{
		ID:        id,
		Nombre:    in.Nombre,
		Apellido:  in.Apellido,
		Direccion: in.Direccion,
		Telefono:  in.Telefono,
	}, orchestrators.SaveMemberDeps{
		MemberStore: s.stores.MemberStore,
		GenerateID:  s.opts.GenerateID,
		Now:         s.opts.Now,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, status, wire.FromMember(m))
}

// handleDeleteMember handles DELETE /api/members/{id}
func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteMember(r.Context(), mux.Vars(r)["id"], orchestrators.DeleteMemberDeps{
		MemberStore: s.stores.MemberStore,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Message: "member deleted"})
}

// handleListFriends handles GET /api/visitors
func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	lw := listutil.Parse(r.URL.Query())
	friends, err := s.stores.FriendStore.List(r.Context(), friendStore.ListFilter{Search: lw.Search, Limit: lw.Limit, Offset: lw.Offset})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromFriends(friends))
}

// handleGetFriend handles GET /api/visitors/{id}
func (s *Server) handleGetFriend(w http.ResponseWriter, r *http.Request) {
	f, err := s.stores.FriendStore.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromFriend(f))
}

// handleCreateFriend handles POST /api/visitors
func (s *Server) handleCreateFriend(w http.ResponseWriter, r *http.Request) {
	s.saveFriend(w, r, "", http.StatusCreated)
}

// handleUpdateFriend handles PUT /api/visitors/{id}
func (s *Server) handleUpdateFriend(w http.ResponseWriter, r *http.Request) {
	s.saveFriend(w, r, mux.Vars(r)["id"], http.StatusOK)
}

func (s *Server) saveFriend(w http.ResponseWriter, r *http.Request, id string, status int) {
	var in wire.FriendInput
	if err := decodeValid(r, &in); err != nil {
		fail(w, err)
		return
	}

	f, err := orchestrators.ExecuteSaveFriend(r.Context(), orchestrators.SaveFriendInput{
		ID:           id,
		Nombre:       in.Nombre,
		DeDondeViene: in.DeDondeViene,
	}, orchestrators.SaveFriendDeps{
		FriendStore: s.stores.FriendStore,
		GenerateID:  s.opts.GenerateID,
		Now:         s.opts.Now,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, status, wire.FromFriend(f))
}

// handleDeleteFriend handles DELETE /api/visitors/{id}
func (s *Server) handleDeleteFriend(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteFriend(r.Context(), mux.Vars(r)["id"], orchestrators.DeleteFriendDeps{
		FriendStore: s.stores.FriendStore,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Message: "visitor deleted"})
}
