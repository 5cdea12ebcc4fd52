// Package metrics computes post-solve balance and utilization metrics
// for a layout: moment-of-inertia-style weight balance, volume and
// weight utilization, and a stacking-stability score. Grounded on the
// original server's metrics_handler module.
package metrics

import (
	"math"

	"github.com/piwi3910/uldsolve/internal/model"
)

// Report holds the computed metrics for one ULD's placements.
type Report struct {
	MOI               float64 `json:"moi"`
	Count             int     `json:"count"`
	Utilization       float64 `json:"utilization"`
	WeightUtilization float64 `json:"weight_utilization"`
	Stability         float64 `json:"stability"`
	PackVolume        int64   `json:"pack_volume"`
}

type center struct{ x, y, z float64 }

func placementCenter(pl model.Placement) center {
	return center{
		x: (float64(pl.P1.X) + float64(pl.P2.X)) / 2,
		y: (float64(pl.P1.Y) + float64(pl.P2.Y)) / 2,
		z: (float64(pl.P1.Z) + float64(pl.P2.Z)) / 2,
	}
}

func distance2D(a center, x, y float64) float64 {
	dx := a.x - x
	dy := a.y - y
	return dx*dx + dy*dy
}

func distanceZ(a, b center) float64 {
	dx := a.x - b.x
	dy := a.y - b.y
	return dx*dx + dy*dy
}

// Compute returns the balance and utilization report for a ULD's
// placements, looking up package weight by id.
func Compute(u model.ULD, placements []model.Placement, packsByID map[string]model.Package) Report {
	report := Report{Count: len(placements)}
	if len(placements) == 0 {
		return report
	}

	var totalVolume int64
	var totalWeight float64
	for _, pl := range placements {
		pk := packsByID[pl.PackID]
		totalVolume += pl.Cuboid().Volume()
		totalWeight += pk.Weight
	}
	report.PackVolume = totalVolume

	uldVolume := u.Volume()
	if uldVolume > 0 {
		report.Utilization = float64(totalVolume) / float64(uldVolume)
	}
	if u.Capacity > 0 {
		report.WeightUtilization = totalWeight / u.Capacity
	}

	report.MOI = moi(u, placements, packsByID)
	report.Stability = stability(u, placements, packsByID, totalWeight)

	return report
}

// moi is the volumetric-center-relative moment of inertia, normalized
// by the same quantity measured from the ULD's four floor corners:
// a small value means the load is well balanced around its own
// center of gravity relative to how it would look from the corners.
func moi(u model.ULD, placements []model.Placement, packsByID map[string]model.Package) float64 {
	var volumeSum float64
	var weightedCenter center
	for _, pl := range placements {
		vol := float64(pl.Cuboid().Volume())
		c := placementCenter(pl)
		volumeSum += vol
		weightedCenter.x += c.x * vol
		weightedCenter.y += c.y * vol
		weightedCenter.z += c.z * vol
	}
	if volumeSum == 0 {
		return 0
	}
	weightedCenter.x /= volumeSum
	weightedCenter.y /= volumeSum
	weightedCenter.z /= volumeSum

	corners := [4][2]float64{
		{0, 0},
		{float64(u.Lx), 0},
		{0, float64(u.Ly)},
		{float64(u.Lx), float64(u.Ly)},
	}

	var moiMin float64
	var moiCorners [4]float64
	for _, pl := range placements {
		pk := packsByID[pl.PackID]
		c := placementCenter(pl)
		moiMin += pk.Weight * distanceZ(c, weightedCenter)
		for i, corner := range corners {
			moiCorners[i] += pk.Weight * distance2D(c, corner[0], corner[1])
		}
	}
	if moiMin == 0 {
		return 0
	}

	mean := (moiCorners[0] + moiCorners[1] + moiCorners[2] + moiCorners[3]) / 4
	var variance float64
	for _, v := range moiCorners {
		d := v - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / 4)

	return (mean + stddev) / moiMin
}

// stability blends floor-support ratio, center-of-gravity height,
// horizontal placement spread, and a stacking-weight check into a
// single [0,1]-ish score; higher is more stable.
func stability(u model.ULD, placements []model.Placement, packsByID map[string]model.Package, totalWeight float64) float64 {
	if len(placements) == 0 || totalWeight == 0 || u.Lz == 0 {
		return 0
	}

	var baseSupportArea, cogHeight, weightedX, weightedY float64

	for _, pl := range placements {
		pk := packsByID[pl.PackID]
		dx, dy, dz := pl.Cuboid().Dims()
		faces := []float64{
			float64(dx) * float64(dy),
			float64(dx) * float64(dz),
			float64(dy) * float64(dz),
		}
		maxFace := faces[0]
		for _, f := range faces[1:] {
			if f > maxFace {
				maxFace = f
			}
		}
		if maxFace > 0 {
			baseSupportArea += float64(dx) * float64(dy) / maxFace
		}

		c := placementCenter(pl)
		cogHeight += c.z / float64(u.Lz) * (pk.Weight / totalWeight)
		weightedX += c.x * pk.Weight
		weightedY += c.y * pk.Weight
	}
	baseSupportArea /= float64(len(placements))

	var stackingOK int
	for _, pl := range placements {
		pk := packsByID[pl.PackID]
		var below float64
		cub := pl.Cuboid()
		for _, other := range placements {
			if other == pl {
				continue
			}
			oc := other.Cuboid()
			if oc.P1.X < cub.P2.X && oc.P2.X > cub.P1.X &&
				oc.P1.Y < cub.P2.Y && oc.P2.Y > cub.P1.Y &&
				oc.P2.Z <= cub.P1.Z {
				below += packsByID[other.PackID].Weight
			}
		}
		if below >= pk.Weight {
			stackingOK++
		}
	}
	stackingStability := float64(stackingOK) / float64(len(placements))

	centerX := weightedX / totalWeight
	centerY := weightedY / totalWeight
	deviation := math.Sqrt(
		(centerX-float64(u.Lx)/2)*(centerX-float64(u.Lx)/2) +
			(centerY-float64(u.Ly)/2)*(centerY-float64(u.Ly)/2))
	spread := (float64(u.Lx) + float64(u.Ly)) / 4
	placementDistribution := 1.0
	if spread > 0 {
		placementDistribution = 1 - deviation/spread
	}

	return 0.2*baseSupportArea + 0.2*(1-cogHeight) + 0.5*placementDistribution + 0.1*stackingStability
}
