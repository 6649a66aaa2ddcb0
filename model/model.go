// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model provides log densities written on the autodiff tape.
package model

import (
	"github.com/KaiKogure/stan/internal/model"
)

// Model is an unnormalized log density over an unconstrained position.
type Model = model.Model

// MetricModel is a Model that also supplies a metric tensor.
type MetricModel = model.MetricModel

// StdNormal is the N-dimensional standard normal.
type StdNormal = model.StdNormal

// Funnel is Neal's funnel with its expected Fisher metric.
type Funnel = model.Funnel

// ErrDimension reports a position vector of the wrong length.
var ErrDimension = model.ErrDimension
