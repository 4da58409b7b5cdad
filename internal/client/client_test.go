package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/srikanth112236/pg-application-sub003/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(serverURL string) *PGBackendClient {
	return New(serverURL, "test-token", 5*time.Second, 0, zap.NewNop())
}

func TestGetFloors(t *testing.T) {
	var gotAuth, gotBranch string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pg/floors", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotBranch = r.URL.Query().Get("branchId")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[
			{"_id":"f1","name":"First Floor"},
			{"_id":"f2","name":"Second Floor"}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	floors, err := c.GetFloors(context.Background(), "branch-1")

	require.NoError(t, err)
	require.Len(t, floors, 2)
	assert.Equal(t, "f1", floors[0].ID)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "branch-1", gotBranch)
}

func TestGetRooms_WithMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pg/rooms", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[
			{"_id":"r1","roomNumber":"101","floorId":{"_id":"f1","name":"First Floor"},
			 "sharingType":"2-sharing","cost":8500,"numberOfBeds":2,
			 "roomStatus":"partially_occupied","availableBedCount":1,"occupiedBedCount":1,
			 "beds":[
				{"bedNumber":1,"isOccupied":false},
				{"bedNumber":2,"isOccupied":true,"residentStatus":"active",
				 "resident":{"firstName":"Ravi","lastName":"Kumar"}}
			 ]}
		],"metadata":{"totalRooms":1,"totalBeds":2,"availableBeds":1,"occupiedBeds":1,"noticePeriodBeds":0,"occupancyRate":50}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	rooms, metadata, err := c.GetRooms(context.Background(), "branch-1")

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "101", rooms[0].RoomNumber)
	assert.Equal(t, models.RoomPartiallyOccupied, rooms[0].RoomStatus)
	require.Len(t, rooms[0].Beds, 2)
	assert.Equal(t, "Ravi", rooms[0].Beds[1].Resident.FirstName)

	require.NotNil(t, metadata)
	assert.Equal(t, 2, metadata.TotalBeds)
	assert.Equal(t, 50.0, metadata.OccupancyRate)
}

func TestGetRooms_NormalizesMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// 房间号缺失、numberOfBeds 缺失、未占用床位带了住户残留
		w.Write([]byte(`{"success":true,"data":[
			{"_id":"r1","floorId":{"_id":"f1"},
			 "roomStatus":"fully_available",
			 "beds":[
				{"bedNumber":1,"isOccupied":false,"residentStatus":"notice_period",
				 "resident":{"firstName":"Stale","lastName":"Entry"}}
			 ]}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	rooms, _, err := c.GetRooms(context.Background(), "branch-1")

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "N/A", rooms[0].RoomNumber)
	assert.Equal(t, "N/A", rooms[0].Floor.Name)
	assert.Equal(t, 1, rooms[0].NumberOfBeds)
	// 未占用床位的住户残留被清掉
	assert.Nil(t, rooms[0].Beds[0].Resident)
	assert.Empty(t, rooms[0].Beds[0].ResidentStatus)
}

func TestGetRooms_ApplicationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"branch not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, _, err := c.GetRooms(context.Background(), "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "branch not found")
}

func TestGetRooms_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, _, err := c.GetRooms(context.Background(), "branch-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestGetFloors_TransportError(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")
	_, err := c.GetFloors(context.Background(), "branch-1")
	require.Error(t, err)
}
