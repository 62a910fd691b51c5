package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fleetbattle-console/internal/model"
)

func TestForbiddenRoleChangeKeepsModalOpen(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	bobID := ts.backend.AddAccount("bob", "secret", model.RolePlayer)
	ts.backend.Fail(http.MethodPut, "/admin/users/"+bobID.String()+"/role", http.StatusForbidden,
		`{"message":"Only a SuperAdmin can change roles"}`)

	before := parseHTML(ts.get("/users").Body)
	require.Equal(t, 2, before.Find("#users-table tbody tr").Length())

	rr := ts.post("/users/"+bobID.String()+"/edit", url.Values{"role": {"Admin"}, "active": {"true"}})
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#modal-edit")
	assertContainsText(t, doc, "#modal-edit .modal-error", "Only a SuperAdmin can change roles")
	// The submitted choice is still selected
	assert.Equal(t, "Admin", doc.Find("#modal-edit select[name='role'] option[selected]").AttrOr("value", ""))

	// The list is unchanged
	assert.Equal(t, 2, doc.Find("#users-table tbody tr").Length())
	assertContainsText(t, doc, "#users-table tr[data-id='"+bobID.String()+"'] td.role", "Player")
	user, ok := ts.backend.User(bobID)
	require.True(t, ok)
	assert.Equal(t, model.RolePlayer, user.Role)

	// A 403 does not end the session
	assert.True(t, ts.app.Session.HasToken(t.Context()))
}

func TestEditWithoutChangesIsRejected(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	bobID := ts.backend.AddAccount("bob", "secret", model.RolePlayer)

	rr := ts.post("/users/"+bobID.String()+"/edit", url.Values{"role": {"Player"}, "active": {"true"}})
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#modal-edit .modal-error", "Nothing to save")

	_, sent := ts.backend.LastRequest(http.MethodPut, "/admin/users/"+bobID.String()+"/role")
	assert.False(t, sent)
}

func TestCreateValidationKeepsInput(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)

	rr := ts.post("/levels", url.Values{"levelName": {"Reef"}, "boardSize": {"ten"}, "timeLimit": {"60"}})
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#modal-create .modal-error")
	assert.Equal(t, "Reef", doc.Find("#modal-create input[name='levelName']").AttrOr("value", ""))
	assert.Equal(t, "ten", doc.Find("#modal-create input[name='boardSize']").AttrOr("value", ""))

	_, sent := ts.backend.LastRequest(http.MethodPost, "/game/levels")
	assert.False(t, sent, "invalid input is not sent")
}

func TestServerErrorShowsMessageInModal(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	ts.backend.Fail(http.MethodPost, "/game/shiptypes", http.StatusConflict, `{"message":"Model code already in use"}`)

	rr := ts.post("/ships", url.Values{"shipName": {"Sub"}, "size": {"3"}, "modelCode": {"SS"}})
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#modal-create .modal-error", "Model code already in use")
	assert.Equal(t, "SS", doc.Find("#modal-create input[name='modelCode']").AttrOr("value", ""))
}

func TestServerErrorWithoutMessageUsesFallback(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	levelID := ts.backend.AddLevel("Reef", 10, 60)
	ts.backend.Fail(http.MethodDelete, "/game/levels/"+levelID.String(), http.StatusInternalServerError, `{}`)

	rr := ts.post("/levels/"+levelID.String()+"/delete", nil)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#modal-delete .modal-error")
	assert.Len(t, ts.backend.Levels(), 1)
}

func TestLoadFailureShowsAlert(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	ts.backend.Fail(http.MethodGet, "/game/shiptypes", http.StatusInternalServerError, `{"message":"Database offline"}`)

	rr := ts.get("/ships")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".load-error", "Database offline")
}

func TestDashboardCountsFailedSourceAsEmpty(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	ts.backend.AddLevel("Reef", 10, 60)
	ts.backend.Fail(http.MethodGet, "/admin/users", http.StatusInternalServerError, `{}`)

	doc := parseHTML(ts.get("/").Body)
	assertContainsText(t, doc, "#stat-total-users .stat-value", "0")
	assertContainsText(t, doc, "#stat-total-levels .stat-value", "1")
	assertContainsText(t, doc, ".dashboard-warning", "users")
}

func TestErrorNoticeOnMissingRecord(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)

	rr := ts.post("/users/999/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/users", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".notice-error", "User not found")
}

func TestNoticeCanBeDismissed(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)

	rr := ts.post("/ships", url.Values{"shipName": {"Sub"}, "size": {"3"}, "modelCode": {"SS"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.get("/ships").Body)
	assertContainsText(t, doc, ".notice-success", "Ship type created successfully")

	rr = ts.post("/notices/dismiss", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	doc = parseHTML(ts.get("/ships").Body)
	assertNotContainsElement(t, doc, ".notice")
}
