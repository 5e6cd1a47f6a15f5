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
Package v1 contains the selector broker REST API version 1.

Selector endpoint

/sel/v1/selector

The selector endpoint can be used to validate selector expressions without
registering them. A POST request with a selector parameter returns the
canonical form and the parse tree of the expression.

Subscription endpoint

/sel/v1/subscription/<topic>?id=<id>&selector=<expression>

A GET request to the subscription endpoint upgrades the connection to a
websocket. All messages published on the given topic whose properties match
the given selector expression are pushed through the websocket. A normal
GET request (without websocket headers) lists the subscriptions of the
topic.

Message endpoint

/sel/v1/message/<topic>

A POST request with a properties object publishes a message on a given
topic. The response contains the number of subscribers which received the
message. A GET request returns the routing log of the broker.
*/
package v1

import (
	"devt.de/krotik/selector/api"
)

/*
APIv1 is the directory for version 1 of the API
*/
const APIv1 = "/v1"

/*
V1EndpointMap is a map of urls to endpoints for version 1 of the API
*/
var V1EndpointMap = map[string]api.RestEndpointInst{
	EndpointSelector:     SelectorEndpointInst,
	EndpointSubscription: SubscriptionEndpointInst,
	EndpointMessage:      MessageEndpointInst,
}
