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
	"net/http"

	"devt.de/krotik/selector/api"
)

/*
EndpointMessage is the message endpoint URL (rooted). Handles everything
under message/...
*/
const EndpointMessage = api.APIRoot + APIv1 + "/message/"

/*
MessageEndpointInst creates a new endpoint handler.
*/
func MessageEndpointInst() api.RestEndpointHandler {
	return &messageEndpoint{}
}

/*
Handler object for message operations.
*/
type messageEndpoint struct {
	*api.DefaultEndpointHandler
}

/*
HandlePOST publishes a message on a given topic.
*/
func (e *messageEndpoint) HandlePOST(w http.ResponseWriter, r *http.Request, resources []string) {

	if len(resources) != 1 {
		http.Error(w, "Need a topic", http.StatusBadRequest)
		return
	}

	dec := json.NewDecoder(r.Body)
	data := make(map[string]interface{})

	if err := dec.Decode(&data); err != nil {
		http.Error(w, "Could not decode request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	props, ok := data["properties"].(map[string]interface{})

	if !ok {
		http.Error(w, "Need a properties object", http.StatusBadRequest)
		return
	}

	receivers := api.SB.Publish(resources[0], props)

	res := map[string]interface{}{
		"receivers": receivers,
	}

	w.Header().Set("content-type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(res)
}

/*
HandleGET returns the routing log of the broker.
*/
func (e *messageEndpoint) HandleGET(w http.ResponseWriter, r *http.Request, resources []string) {

	w.Header().Set("content-type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(api.SB.RoutingLog())
}
