package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/mentor-hub/internal/service"
	"github.com/MKhiriev/mentor-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// adminCall serves one request as the administrator.
func adminCall(t *testing.T, method, target, body string, setup func(m *handlerMocks)) (int, envelope) {
	t.Helper()
	h, m := newTestHandler(t)
	expectSession(m, adminUser())
	if setup != nil {
		setup(m)
	}

	rec := serve(h, authedRequest(method, target, body, adminUser().UserID))
	return rec.Code, decodeEnvelope(t, rec)
}

func TestAdmin_AddUser(t *testing.T) {
	status, env := adminCall(t, http.MethodPost, "/api/admin/users", `{"email":"bob@example.com","full_name":"Bob","role":"Mentor"}`,
		func(m *handlerMocks) {
			m.users.EXPECT().AddUser(gomock.Any(), models.AddUserRequest{Email: "bob@example.com", FullName: "Bob", Role: "Mentor"}).
				Return(models.User{UserID: 5, Email: "bob@example.com", Role: models.RoleMentor, IsWhitelisted: true}, nil)
		})

	require.Equal(t, http.StatusCreated, status)
	var user models.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, int64(5), user.UserID)
	assert.NotContains(t, string(env.Data), "password", "hash is never serialized")
}

func TestAdmin_AddUser_Conflict(t *testing.T) {
	status, env := adminCall(t, http.MethodPost, "/api/admin/users", `{"email":"bob@example.com"}`,
		func(m *handlerMocks) {
			m.users.EXPECT().AddUser(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrEmailAlreadyExists)
		})

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, service.ErrEmailAlreadyExists.Message, env.Message)
}

func TestAdmin_ListUsers_Filter(t *testing.T) {
	blocked := true
	status, env := adminCall(t, http.MethodGet, "/api/admin/users?role=mentor&blocked=true&search=ann", "",
		func(m *handlerMocks) {
			m.users.EXPECT().ListUsers(gomock.Any(), models.UserFilter{Role: "mentor", Blocked: &blocked, Search: "ann"}).Return(nil, nil)
		})

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", string(env.Data))
}

func TestAdmin_ListUsers_BadBlockedIgnored(t *testing.T) {
	status, _ := adminCall(t, http.MethodGet, "/api/admin/users?blocked=maybe", "",
		func(m *handlerMocks) {
			m.users.EXPECT().ListUsers(gomock.Any(), models.UserFilter{}).Return([]models.User{{UserID: 1}}, nil)
		})

	assert.Equal(t, http.StatusOK, status)
}

func TestAdmin_PathIDValidation(t *testing.T) {
	for _, target := range []string{"/api/admin/users/abc", "/api/admin/users/0", "/api/admin/users/-4"} {
		t.Run(target, func(t *testing.T) {
			status, env := adminCall(t, http.MethodGet, target, "", nil)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, ErrInvalidPathID.Error(), env.Message)
		})
	}
}

func TestAdmin_UserLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		setup   func(m *handlerMocks)
		status  int
		message string
	}{
		{
			name: "get", method: http.MethodGet, target: "/api/admin/users/7",
			setup: func(m *handlerMocks) {
				m.users.EXPECT().GetUser(gomock.Any(), int64(7)).Return(plainUser(), nil)
			},
			status: http.StatusOK, message: "User fetched successfully",
		},
		{
			name: "get unknown", method: http.MethodGet, target: "/api/admin/users/8",
			setup: func(m *handlerMocks) {
				m.users.EXPECT().GetUser(gomock.Any(), int64(8)).Return(models.User{}, service.ErrUserNotFound)
			},
			status: http.StatusNotFound, message: "User not found",
		},
		{
			name: "block", method: http.MethodPatch, target: "/api/admin/users/7/block",
			setup: func(m *handlerMocks) {
				m.users.EXPECT().BlockUser(gomock.Any(), int64(7)).Return(nil)
			},
			status: http.StatusOK, message: "User blocked successfully",
		},
		{
			name: "unblock", method: http.MethodPatch, target: "/api/admin/users/7/unblock",
			setup: func(m *handlerMocks) {
				m.users.EXPECT().UnblockUser(gomock.Any(), int64(7)).Return(nil)
			},
			status: http.StatusOK, message: "User unblocked successfully",
		},
		{
			name: "role", method: http.MethodPatch, target: "/api/admin/users/7/role", body: `{"role":"admin"}`,
			setup: func(m *handlerMocks) {
				m.users.EXPECT().UpdateRole(gomock.Any(), int64(7), "admin").Return(models.User{UserID: 7, Role: models.RoleAdmin}, nil)
			},
			status: http.StatusOK, message: "Role updated successfully",
		},
		{
			name: "role invalid", method: http.MethodPatch, target: "/api/admin/users/7/role", body: `{"role":"owner"}`,
			setup: func(m *handlerMocks) {
				m.users.EXPECT().UpdateRole(gomock.Any(), int64(7), "owner").Return(models.User{}, service.ErrInvalidRole)
			},
			status: http.StatusBadRequest, message: service.ErrInvalidRole.Message,
		},
		{
			name: "remove", method: http.MethodDelete, target: "/api/admin/users/7",
			setup: func(m *handlerMocks) {
				m.users.EXPECT().RemoveUser(gomock.Any(), int64(7)).Return(nil)
			},
			status: http.StatusOK, message: "User removed successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := adminCall(t, tt.method, tt.target, tt.body, tt.setup)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestAdmin_Mentors(t *testing.T) {
	t.Run("assign", func(t *testing.T) {
		status, env := adminCall(t, http.MethodPost, "/api/admin/mentors/assign", `{"mentor_id":2,"user_ids":[10,11]}`,
			func(m *handlerMocks) {
				m.mentors.EXPECT().AssignMentees(gomock.Any(), models.MentorAssignRequest{MentorID: 2, UserIDs: []int64{10, 11}}).Return(int64(2), nil)
			})

		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"updated":2}`, string(env.Data))
	})

	t.Run("assign to non-mentor", func(t *testing.T) {
		status, env := adminCall(t, http.MethodPost, "/api/admin/mentors/assign", `{"mentor_id":3,"user_ids":[10]}`,
			func(m *handlerMocks) {
				m.mentors.EXPECT().AssignMentees(gomock.Any(), gomock.Any()).Return(int64(0), service.ErrNotAMentor)
			})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Selected user is not a mentor", env.Message)
	})

	t.Run("unassign", func(t *testing.T) {
		status, _ := adminCall(t, http.MethodPost, "/api/admin/mentors/unassign", `{"mentor_id":2,"user_ids":[10]}`,
			func(m *handlerMocks) {
				m.mentors.EXPECT().UnassignMentees(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			})

		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("list mentors and students", func(t *testing.T) {
		status, env := adminCall(t, http.MethodGet, "/api/admin/mentors", "", func(m *handlerMocks) {
			m.mentors.EXPECT().ListMentors(gomock.Any()).Return([]models.MenteeView{{ID: 2, FullName: "Grace"}}, nil)
		})
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(env.Data), "Grace")

		status, _ = adminCall(t, http.MethodGet, "/api/admin/students", "", func(m *handlerMocks) {
			m.mentors.EXPECT().ListStudents(gomock.Any()).Return(nil, nil)
		})
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestAdmin_CreateNotification(t *testing.T) {
	status, _ := adminCall(t, http.MethodPost, "/api/admin/notifications", `{"user_id":7,"title":"Hi","message":"Welcome"}`,
		func(m *handlerMocks) {
			m.notifications.EXPECT().Create(gomock.Any(), models.Notification{UserID: 7, Title: "Hi", Message: "Welcome"}).
				Return(models.Notification{ID: 1, UserID: 7}, nil)
		})

	assert.Equal(t, http.StatusCreated, status)
}
