/*
 * Selector
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"testing"
)

const testconf = "testconfig"

func TestConfig(t *testing.T) {

	Config = nil

	ioutil.WriteFile(testconf, []byte(`{
    "EnableAccessLog": true
}`), 0644)

	defer func() {
		if err := os.Remove(testconf); err != nil {
			fmt.Print("Could not remove test config file:", err.Error())
		}
	}()

	if err := LoadConfigFile(testconf); err != nil {
		t.Error(err)
		return
	}

	if res := Str(EnableAccessLog); res != "true" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(EnableAccessLog); !res {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Str(HTTPPort); res != DefaultConfig[HTTPPort] {
		t.Error("Unexpected result:", res)
		return
	}

	LoadDefaultConfig()

	if res := Bool(EnableAccessLog); res {
		t.Error("Unexpected result:", res)
		return
	}

	Config[HTTPPort] = "123"

	if res := Int(HTTPPort); res != 123 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(RoutingLogSize); res != 100 {
		t.Error("Unexpected result:", res)
		return
	}

	LoadDefaultConfig()
}
