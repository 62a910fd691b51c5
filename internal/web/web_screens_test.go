package web_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/testutil"
)

func TestUsersTableIgnoresEnvelopeShape(t *testing.T) {
	envelopes := map[string]testutil.Envelope{
		"bare array": testutil.EnvelopeBare,
		"data":       testutil.EnvelopeData,
		"items":      testutil.EnvelopeItems,
		"users":      testutil.EnvelopeNamed,
	}
	for name, env := range envelopes {
		t.Run(name, func(t *testing.T) {
			ts := newWebTestServer(t)
			ts.signIn("root", model.RoleAdmin)
			ts.backend.AddAccount("bob", "secret", model.RolePlayer)
			ts.backend.SetEnvelope(env)

			rr := ts.get("/users")
			require.Equal(t, http.StatusOK, rr.Code)

			doc := parseHTML(rr.Body)
			assert.Equal(t, 2, doc.Find("#users-table tbody tr").Length())
			assertContainsText(t, doc, "#count-total .stat-value", "2")
			assertNotContainsElement(t, doc, ".load-error")
		})
	}
}

func TestUsersSearchAndPagination(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	for i := 0; i < 12; i++ {
		ts.backend.AddAccount(fmt.Sprintf("sailor%02d", i), "secret", model.RolePlayer)
	}

	doc := parseHTML(ts.get("/users").Body)
	assert.Equal(t, 10, doc.Find("#users-table tbody tr").Length())
	assert.Equal(t, 2, doc.Find("nav.pagination a").Length())
	assertContainsText(t, doc, "#count-total .stat-value", "13")

	doc = parseHTML(ts.get("/users?page=2").Body)
	assert.Equal(t, 3, doc.Find("#users-table tbody tr").Length())

	doc = parseHTML(ts.get("/users?search=SAILOR1").Body)
	assert.Equal(t, 2, doc.Find("#users-table tbody tr").Length())
	// Counts cover every account, not just the matches
	assertContainsText(t, doc, "#count-total .stat-value", "13")
}

func TestUserModals(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	bobID := ts.backend.AddAccount("bob", "secret", model.RolePlayer)

	doc := parseHTML(ts.get("/users?modal=view&id=" + bobID.String()).Body)
	assertContainsText(t, doc, "#modal-view", "bob@example.com")

	doc = parseHTML(ts.get("/users?modal=edit&id=" + bobID.String()).Body)
	assert.Equal(t, 2, doc.Find("#modal-edit select[name='role'] option").Length())
	assert.Equal(t, "Player", doc.Find("#modal-edit option[selected]").AttrOr("value", ""))

	doc = parseHTML(ts.get("/users?modal=bogus").Body)
	assertNotContainsElement(t, doc, ".modal")
}

func TestRoleChoicesFallBackWhenRolesFail(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	bobID := ts.backend.AddAccount("bob", "pw", model.RolePlayer)
	ts.backend.Fail(http.MethodGet, "/admin/roles", http.StatusInternalServerError, `{}`)

	doc := parseHTML(ts.get("/users?modal=edit&id=" + bobID.String()).Body)
	options := doc.Find("#modal-edit select[name='role'] option")
	require.Equal(t, 2, options.Length())
	assert.Equal(t, "Admin", options.First().AttrOr("value", ""))
	assert.Equal(t, "Player", options.Last().AttrOr("value", ""))
}

func TestUserCreateEditDelete(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)

	doc := parseHTML(ts.get("/users?modal=create").Body)
	assertContainsElement(t, doc, "#modal-create form#create-user-form")
	assertNotContainsElement(t, doc, "#modal-create select[name='role']")

	rr := ts.post("/users", url.Values{
		"username": {"dave"}, "email": {"dave@example.com"}, "password": {"pw"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	register, ok := ts.backend.LastRequest(http.MethodPost, "/auth/register")
	require.True(t, ok)
	assert.JSONEq(t, `{"username":"dave","password":"pw","email":"dave@example.com"}`, register.Body)

	doc = parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".notice-success", "User created successfully")
	assert.Equal(t, 2, doc.Find("#users-table tbody tr").Length())

	daveID := model.ID(doc.Find("#users-table tr:contains('dave')").AttrOr("data-id", ""))
	require.False(t, daveID.IsZero())

	// Deactivate only: the role is not sent
	rr = ts.post("/users/"+daveID.String()+"/edit", url.Values{"role": {"Player"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	_, roleSent := ts.backend.LastRequest(http.MethodPut, "/admin/users/"+daveID.String()+"/role")
	assert.False(t, roleSent)
	status, ok := ts.backend.LastRequest(http.MethodPut, "/admin/users/"+daveID.String()+"/status")
	require.True(t, ok)
	assert.JSONEq(t, `{"isActive":false}`, status.Body)

	rr = ts.post("/users/"+daveID.String()+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	doc = parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".notice-success", `User "dave" deleted`)
	_, exists := ts.backend.User(daveID)
	assert.False(t, exists)
}

func TestLevelsCreateEditAndFleet(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	subID := ts.backend.AddShipType("Submarine", 3, "SS")
	ts.backend.AddShipType("Carrier", 5, "CV")

	rr := ts.post("/levels", url.Values{"levelName": {"Reef"}, "boardSize": {"10"}, "timeLimit": {"60"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	levels := ts.backend.Levels()
	require.Len(t, levels, 1)
	levelID := levels[0].ID

	rr = ts.post("/levels/"+levelID.String()+"/edit", url.Values{"boardSize": {"12"}, "timeLimit": {"90"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, 12, ts.backend.Levels()[0].BoardSize)

	doc := parseHTML(ts.get("/levels?modal=ships&id=" + levelID.String()).Body)
	assert.Equal(t, 2, doc.Find("#level-ships-form input[type='number']").Length())

	rr = ts.post("/levels/"+levelID.String()+"/ships", url.Values{
		"qty_" + subID.String(): {"2"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	fleet := ts.backend.ShipConfig(levelID)
	require.Len(t, fleet, 1)
	assert.Equal(t, model.LevelShipConfig{ShipTypeID: subID, Quantity: 2}, fleet[0])

	// The modal is prefilled with the saved fleet
	doc = parseHTML(ts.get("/levels?modal=ships&id=" + levelID.String()).Body)
	assert.Equal(t, "2", doc.Find("input[name='qty_"+subID.String()+"']").AttrOr("value", ""))
}

func TestLevelDetailModal(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	subID := ts.backend.AddShipType("Submarine", 3, "SS")
	levelID := ts.backend.AddLevel("Reef", 10, 90)

	rr := ts.post("/levels/"+levelID.String()+"/ships", url.Values{"qty_" + subID.String(): {"2"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.get("/levels").Body)
	assertContainsElement(t, doc, "#levels-table a[href*='modal=view']")

	doc = parseHTML(ts.get("/levels?modal=view&id=" + levelID.String()).Body)
	assertContainsText(t, doc, "#modal-view h2", "Reef")
	var values []string
	doc.Find("#modal-view dl.level-detail dd").Each(func(_ int, dd *goquery.Selection) {
		values = append(values, dd.Text())
	})
	assert.Equal(t, []string{levelID.String(), "Reef", "10x10 (100 cells)", "90s (1m 30s)"}, values)

	cells := doc.Find("#level-fleet tr[data-id='" + subID.String() + "'] td")
	require.Equal(t, 3, cells.Length())
	assert.Equal(t, "Submarine", cells.Eq(0).Text())
	assert.Equal(t, "3", cells.Eq(1).Text())
	assert.Equal(t, "2", cells.Eq(2).Text())

	doc = parseHTML(ts.get("/levels?modal=view&id=999").Body)
	assertNotContainsElement(t, doc, ".modal")
	assertContainsElement(t, doc, ".alert.load-error")
}

func TestLevelDetailWithoutFleet(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	levelID := ts.backend.AddLevel("Reef", 8, 60)

	doc := parseHTML(ts.get("/levels?modal=view&id=" + levelID.String()).Body)
	assertContainsText(t, doc, "#modal-view", "No ships configured for this level.")
	assertNotContainsElement(t, doc, "#level-fleet")
}

func TestLevelFleetRejectsEmptyAndNegative(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	subID := ts.backend.AddShipType("Submarine", 3, "SS")
	levelID := ts.backend.AddLevel("Reef", 10, 60)

	doc := parseHTML(ts.post("/levels/"+levelID.String()+"/ships", url.Values{"qty_" + subID.String(): {"-1"}}).Body)
	assertContainsElement(t, doc, "#modal-ships .modal-error")

	doc = parseHTML(ts.post("/levels/"+levelID.String()+"/ships", url.Values{"qty_" + subID.String(): {"0"}}).Body)
	assertContainsElement(t, doc, "#modal-ships .modal-error")

	_, sent := ts.backend.LastRequest(http.MethodPost, "/game/levels/"+levelID.String()+"/ships")
	assert.False(t, sent)
}

func TestShipsEditAndDelete(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	subID := ts.backend.AddShipType("Submarine", 3, "SS")

	doc := parseHTML(ts.get("/ships?modal=edit&id=" + subID.String()).Body)
	assert.Equal(t, "Submarine", doc.Find("#modal-edit input[name='shipName']").AttrOr("value", ""))

	rr := ts.post("/ships/"+subID.String()+"/edit", url.Values{"shipName": {"Sub"}, "size": {"4"}, "modelCode": {"SS2"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "Sub", ts.backend.ShipTypes()[0].Name)

	rr = ts.post("/ships/"+subID.String()+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Empty(t, ts.backend.ShipTypes())
}

func TestShipDetailModal(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	subID := ts.backend.AddShipType("Submarine", 3, "SS")

	doc := parseHTML(ts.get("/ships").Body)
	assertContainsElement(t, doc, "#ships-table a[href*='modal=view']")

	doc = parseHTML(ts.get("/ships?modal=view&id=" + subID.String()).Body)
	assertContainsText(t, doc, "#modal-view h2", "Submarine")
	var values []string
	doc.Find("#modal-view dl.ship-detail dd").Each(func(_ int, dd *goquery.Selection) {
		values = append(values, dd.Text())
	})
	assert.Equal(t, []string{subID.String(), "Submarine", "3 cells", "SS"}, values)

	_, fetched := ts.backend.LastRequest(http.MethodGet, "/game/shiptypes/"+subID.String())
	assert.True(t, fetched)

	doc = parseHTML(ts.get("/ships?modal=view&id=999").Body)
	assertNotContainsElement(t, doc, ".modal")
	assertContainsElement(t, doc, ".alert.load-error")
}

func TestGamesShowsSelectedConfig(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	levelID := ts.backend.AddLevel("Reef", 10, 60)

	doc := parseHTML(ts.get("/games").Body)
	assert.Equal(t, 1, doc.Find(".level-picker a").Length())
	assertNotContainsElement(t, doc, "#game-config")

	doc = parseHTML(ts.get("/games?level=" + levelID.String()).Body)
	assertContainsText(t, doc, "#game-config", "boardSize")
	assertContainsText(t, doc, "#game-config", "Reef")
}

func TestHealthz(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/healthz")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Healthy", body["backend"])
}

func TestMetricsExposeBackendCalls(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("root", model.RoleAdmin)
	ts.get("/users")

	rr := ts.get("/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "fbconsole_backend_requests_total")
}
