// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

// Package services adapts application components to suture.Service so the
// supervisor tree can start, restart and stop them.
//
// Each service blocks in Serve until its context is canceled and implements
// fmt.Stringer so supervisor events name it.
package services
