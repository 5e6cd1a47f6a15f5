/*
 * Selector
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package server contains the code for the selector broker server.
*/
package server

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"devt.de/krotik/common/httputil"
	"devt.de/krotik/common/logutil"
	"devt.de/krotik/selector/api"
	v1 "devt.de/krotik/selector/api/v1"
	"devt.de/krotik/selector/broker"
	"devt.de/krotik/selector/config"
)

/*
Using custom consolelogger type so we can test log.Fatal calls with unit
tests. Overwrite these if the server should not call os.Exit on a fatal
error.
*/
type consolelogger func(v ...interface{})

var fatal = consolelogger(func(v ...interface{}) {
	log.Error(v...)
	os.Exit(1)
})

var print = consolelogger(func(v ...interface{}) {
	log.Info(v...)
})

/*
Server log
*/
var log = logutil.GetLogger("selector.server")

/*
Server instance which can be used to shut the server down (used by unit
tests)
*/
var hs *httputil.HTTPServer

/*
StartServer runs the selector broker server. The server uses config.Config
for all its configuration parameters.
*/
func StartServer() {
	StartServerWithSingleOp(nil)
}

/*
StartServerWithSingleOp runs the selector broker server. If the
singleOperation function is not nil then the server executes the function
and exits if the function returns true.
*/
func StartServerWithSingleOp(singleOperation func(*broker.Broker) bool) {

	// Ensure logging is printed to the console

	logutil.ClearLogSinks()
	log.AddLogSink(logutil.Info, logutil.ConsoleFormatter(), os.Stderr)

	print(fmt.Sprintf("Selector %v", config.ProductVersion))

	// Ensure we have a configuration - use the default configuration if
	// nothing was set

	if config.Config == nil {
		config.LoadDefaultConfig()
	}

	// Optionally log all requests to a file

	if config.Bool(config.EnableAccessLog) {
		logFile, err := os.OpenFile(config.Str(config.LocationAccessLog),
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)

		if err != nil {
			fatal("Could not open access log:", err)
			return
		}

		defer logFile.Close()

		accessLog := logutil.GetLogger("selector.server.access")
		accessLog.AddLogSink(logutil.Debug, logutil.SimpleFormatter(), logFile)

		api.HandleFunc = func(pattern string, handler func(http.ResponseWriter, *http.Request)) {
			http.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
				accessLog.Debug(r.RemoteAddr, " ", r.Method, " ", r.URL)
				handler(w, r)
			})
		}
	}

	// Create the broker instance for the REST API

	print("Creating broker instance")

	api.SB = broker.NewBroker(int(config.Int(config.RoutingLogSize)))

	// Handle single operation - these are operations which work on the
	// broker and then exit.

	if singleOperation != nil && singleOperation(api.SB) {
		return
	}

	api.APIHost = config.Str(config.HTTPHost) + ":" + config.Str(config.HTTPPort)

	// Register REST endpoints

	api.RegisterRestEndpoints(api.GeneralEndpointMap)
	api.RegisterRestEndpoints(v1.V1EndpointMap)

	// Start HTTP server and enable REST API

	hs = &httputil.HTTPServer{}

	var wg sync.WaitGroup
	wg.Add(1)

	print("Starting server on: ", api.APIHost)

	go hs.RunHTTPServer(":"+config.Str(config.HTTPPort), &wg)

	wg.Wait()

	// HTTP server has started

	if hs.LastError != nil {
		fatal(hs.LastError)
		return
	}

	// Add to the wait group so we can wait for the shutdown

	wg.Add(1)

	print("Waiting for shutdown")

	wg.Wait()

	print("Shutting down")
}
