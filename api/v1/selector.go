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

	"devt.de/krotik/selector"
	"devt.de/krotik/selector/api"
)

/*
EndpointSelector is the selector endpoint URL (rooted). Handles
everything under selector/...
*/
const EndpointSelector = api.APIRoot + APIv1 + "/selector/"

/*
SelectorEndpointInst creates a new endpoint handler.
*/
func SelectorEndpointInst() api.RestEndpointHandler {
	return &selectorEndpoint{}
}

/*
Handler object for selector operations.
*/
type selectorEndpoint struct {
	*api.DefaultEndpointHandler
}

/*
HandlePOST validates a given selector expression and returns its canonical
form and its parse tree.
*/
func (e *selectorEndpoint) HandlePOST(w http.ResponseWriter, r *http.Request, resources []string) {

	dec := json.NewDecoder(r.Body)
	data := make(map[string]interface{})

	if err := dec.Decode(&data); err != nil {
		http.Error(w, "Could not decode request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	src, ok := data["selector"]

	if !ok {
		http.Error(w, "Need a selector parameter", http.StatusBadRequest)
		return
	}

	sel, err := selector.MakeSelector("request", fmt.Sprint(src))

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := map[string]interface{}{
		"selector": sel.String(),
		"ast":      sel.AST().Plain(),
	}

	w.Header().Set("content-type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(res)
}

/*
HandleGET lists all registered subscriptions.
*/
func (e *selectorEndpoint) HandleGET(w http.ResponseWriter, r *http.Request, resources []string) {

	topic := ""
	if len(resources) > 0 {
		topic = resources[0]
	}

	w.Header().Set("content-type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(api.SB.Subscriptions(topic))
}
