/*
 * Selector
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"devt.de/krotik/common/cryptutil"
	"devt.de/krotik/selector/api"
)

/*
EndpointSubscription is the subscription endpoint URL (rooted). Handles
websockets under subscription/...
*/
const EndpointSubscription = api.APIRoot + APIv1 + "/subscription/"

/*
upgrader can upgrade normal requests to websocket communications
*/
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

/*
SubscriptionEndpointInst creates a new endpoint handler.
*/
func SubscriptionEndpointInst() api.RestEndpointHandler {
	return &subscriptionEndpoint{}
}

/*
Handler object for subscription operations.
*/
type subscriptionEndpoint struct {
	*api.DefaultEndpointHandler
}

/*
HandleGET subscribes to a topic with a given selector. The incoming
connection is upgraded to a websocket through which matching messages are
pushed. Without websocket headers the subscriptions of the topic are
listed.
*/
func (e *subscriptionEndpoint) HandleGET(w http.ResponseWriter, r *http.Request, resources []string) {

	if len(resources) != 1 {
		http.Error(w, "Need a topic", http.StatusBadRequest)
		return
	}

	topic := resources[0]

	if !websocket.IsWebSocketUpgrade(r) {
		w.Header().Set("content-type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.Encode(api.SB.Subscriptions(topic))
		return
	}

	sel := r.URL.Query().Get("selector")

	id := r.URL.Query().Get("id")
	if id == "" {
		id = fmt.Sprintf("%x", cryptutil.GenerateUUID())
	}

	conn, err := upgrader.Upgrade(w, r, nil)

	if err != nil {

		// We give details here on what went wrong

		w.Write([]byte(err.Error()))
		return
	}

	// Websocket connections support one concurrent reader and one
	// concurrent writer.
	// See: https://godoc.org/github.com/gorilla/websocket#hdr-Concurrency

	connWMutex := &sync.Mutex{}

	writeMessage := func(data map[string]interface{}) error {
		res, err := json.Marshal(data)
		if err != nil {
			return err
		}

		connWMutex.Lock()
		defer connWMutex.Unlock()

		return conn.WriteMessage(websocket.TextMessage, res)
	}

	_, err = api.SB.Subscribe(topic, id, sel, func(props map[string]interface{}) error {
		return writeMessage(map[string]interface{}{
			"id":      id,
			"type":    "message",
			"payload": props,
		})
	})

	if err != nil {
		writeMessage(map[string]interface{}{
			"id":      id,
			"type":    "error",
			"payload": err.Error(),
		})
		conn.Close()
		return
	}

	writeMessage(map[string]interface{}{
		"id":      id,
		"type":    "subscribe_success",
		"payload": map[string]interface{}{},
	})

	// Read loop - the subscription ends when the client closes the
	// connection

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			api.SB.Unsubscribe(topic, id)
			conn.Close()
			return
		}
	}
}
