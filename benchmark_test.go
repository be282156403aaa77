package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	appMiddleware "github.com/FACorreiaa/go-trip-itinerary/app/middleware"
	"github.com/FACorreiaa/go-trip-itinerary/config"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-itinerary/internal/container"
	"github.com/FACorreiaa/go-trip-itinerary/internal/router"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func benchSpots(n int) []types.Spot {
	cats := []string{types.CategoryAttraction, types.CategoryAttraction, types.CategoryRestaurant, types.CategoryCafe}
	out := make([]types.Spot, n)
	for i := range out {
		out[i] = types.Spot{
			Name:     fmt.Sprintf("spot-%d", i),
			Lat:      37.5 + float64(i)*0.001,
			Lng:      127.0 + float64(i)*0.001,
			Category: cats[i%len(cats)],
		}
	}
	return out
}

func BenchmarkEvenSplitAllocate(b *testing.B) {
	a := itinerary.NewEvenSplitAllocator()
	in := benchSpots(40)
	b.ReportAllocs()
	for b.Loop() {
		a.Allocate("서울", 7, in)
	}
}

func BenchmarkCategoryBalancedAllocate(b *testing.B) {
	a := itinerary.NewCategoryBalancedAllocator(rand.NewPCG(1, 2), true)
	in := benchSpots(40)
	b.ReportAllocs()
	for b.Loop() {
		a.Allocate("서울", 7, in)
	}
}

func BenchmarkCreatePlanEndpoint(b *testing.B) {
	cfg, err := config.Embedded()
	if err != nil {
		b.Fatal(err)
	}
	cfg.Spots.Source = "static"
	cfg.Session.Store = "memory"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := container.NewContainer(context.Background(), &cfg, logger)
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()

	r := router.SetupRouter(&router.Config{
		SpotsHandler:     c.SpotsHandler,
		ItineraryHandler: c.ItineraryHandler,
		Logger:           logger,
	})

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader(`{"city":"서울","days":3}`))
			req.Header.Set(appMiddleware.SessionHeader, uuid.NewString())
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != http.StatusCreated {
				b.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
			}
		}
	})
}
