/*
 * Selector
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package server

import (
	"testing"

	"devt.de/krotik/selector/api"
	"devt.de/krotik/selector/broker"
	"devt.de/krotik/selector/config"
)

func TestStartServerWithSingleOp(t *testing.T) {

	config.LoadDefaultConfig()

	called := false

	StartServerWithSingleOp(func(b *broker.Broker) bool {
		called = true

		if b == nil || b != api.SB {
			t.Error("Broker instance should have been created")
		}

		// Returning true exits the server before the REST API is started

		return true
	})

	if !called {
		t.Error("Single operation should have been called")
		return
	}
}
