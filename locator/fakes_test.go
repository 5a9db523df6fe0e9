package locator

import (
	"context"
	"sync"
	"time"

	"tire-locator/models"
)

var (
	shopOne = models.Location{
		ID:       1,
		Name:     "Шиномонтаж №1",
		Address:  "Автовская ул., 35А",
		Schedule: "9:00 - 18:00",
		Coords:   models.Coordinates{Lat: 59.877353, Lon: 30.280951},
	}
	shopTwo = models.Location{
		ID:       2,
		Name:     "Шиномонтаж №2",
		Address:  "Московский проспект, 154",
		Schedule: "10:00 - 20:00",
		Coords:   models.Coordinates{Lat: 59.882415, Lon: 30.321069},
	}
)

type fakeFetcher struct {
	locations []models.Location
	err       error
	calls     int
}

func (f *fakeFetcher) GetPlacemarks(ctx context.Context) ([]models.Location, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Location{}, f.locations...), nil
}

// fakeSubmitter records requests. When release is set, each call blocks until
// it receives a value.
type fakeSubmitter struct {
	mu       sync.Mutex
	requests []models.FormRequest
	err      error
	release  chan struct{}
	onCall   func()
}

func (f *fakeSubmitter) CreateRequest(ctx context.Context, req models.FormRequest) (*models.RequestAck, error) {
	if f.onCall != nil {
		f.onCall()
	}
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.RequestAck{Status: "ok", RequestID: "req", PlacemarkID: req.ID}, nil
}

func (f *fakeSubmitter) Requests() []models.FormRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.FormRequest(nil), f.requests...)
}

type panCall struct {
	coords   models.Coordinates
	duration time.Duration
}

type recordingWidget struct {
	mu       sync.Mutex
	pans     []panCall
	balloons []int
	colors   map[int]string
}

func newRecordingWidget() *recordingWidget {
	return &recordingWidget{colors: map[int]string{}}
}

func (w *recordingWidget) PanTo(coords models.Coordinates, duration time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pans = append(w.pans, panCall{coords: coords, duration: duration})
}

func (w *recordingWidget) OpenBalloon(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balloons = append(w.balloons, id)
}

func (w *recordingWidget) SetMarkerColor(id int, color string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.colors[id] = color
}

func (w *recordingWidget) countColor(color string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, c := range w.colors {
		if c == color {
			n++
		}
	}
	return n
}

// staticLookup is a LocationLookup over a fixed slice.
type staticLookup []models.Location

func (l staticLookup) Find(id int) (models.Location, bool) {
	for _, loc := range l {
		if loc.ID == id {
			return loc, true
		}
	}
	return models.Location{}, false
}
