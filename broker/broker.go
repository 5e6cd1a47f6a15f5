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
Package broker contains a simple message broker which routes published
messages to subscribers. Every subscriber registers with a selector
expression which is evaluated against the properties of each published
message.
*/
package broker

import (
	"fmt"
	"sync"

	"devt.de/krotik/common/datautil"
	"devt.de/krotik/common/timeutil"
	"devt.de/krotik/selector"
	"devt.de/krotik/selector/interpreter"
)

/*
PublishFunc is called for a subscription whenever a matching message was
published. If the function returns an error then the subscription is
removed.
*/
type PublishFunc func(props map[string]interface{}) error

/*
Subscription models a single subscriber of a topic.
*/
type Subscription struct {
	Topic          string // Topic this subscription belongs to
	ID             string // Unique ID of the subscriber
	SelectorString string // Canonical form of the registered selector

	sel     *selector.Selector
	publish PublishFunc
}

/*
Broker routes published messages to subscribers.
*/
type Broker struct {
	subs map[string]map[string]*Subscription
	log  *datautil.RingBuffer
	lock *sync.RWMutex
}

/*
NewBroker creates a new Broker object which keeps a given number of routing
log entries.
*/
func NewBroker(logHistory int) *Broker {
	return &Broker{
		make(map[string]map[string]*Subscription),
		datautil.NewRingBuffer(logHistory),
		&sync.RWMutex{},
	}
}

/*
Subscribe registers a subscriber with a given selector expression on a
given topic. The given publish function is called for every matching
message.
*/
func (b *Broker) Subscribe(topic string, id string, sel string, publish PublishFunc) (*Subscription, error) {

	compiled, err := selector.MakeSelector(fmt.Sprintf("%s/%s", topic, id), sel)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{topic, id, compiled.String(), compiled, publish}

	b.lock.Lock()
	defer b.lock.Unlock()

	topicSubs, ok := b.subs[topic]
	if !ok {
		topicSubs = make(map[string]*Subscription)
		b.subs[topic] = topicSubs
	}

	topicSubs[id] = sub

	b.log.Log(timeutil.MakeTimestamp(), " subscribe topic=", topic, " id=", id,
		" selector=", sub.SelectorString)

	return sub, nil
}

/*
Unsubscribe removes a subscriber from a given topic.
*/
func (b *Broker) Unsubscribe(topic string, id string) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.unsubscribe(topic, id)
}

func (b *Broker) unsubscribe(topic string, id string) {
	if topicSubs, ok := b.subs[topic]; ok {
		if _, ok := topicSubs[id]; ok {
			delete(topicSubs, id)

			if len(topicSubs) == 0 {
				delete(b.subs, topic)
			}

			b.log.Log(timeutil.MakeTimestamp(), " unsubscribe topic=", topic, " id=", id)
		}
	}
}

/*
Subscriptions returns descriptions of all subscriptions of a given topic.
The topic can be empty to list all subscriptions.
*/
func (b *Broker) Subscriptions(topic string) []map[string]interface{} {
	b.lock.RLock()
	defer b.lock.RUnlock()

	ret := make([]map[string]interface{}, 0)

	for t, topicSubs := range b.subs {
		if topic != "" && t != topic {
			continue
		}

		for _, sub := range topicSubs {
			ret = append(ret, map[string]interface{}{
				"topic":    sub.Topic,
				"id":       sub.ID,
				"selector": sub.SelectorString,
			})
		}
	}

	return ret
}

/*
Publish routes a message with the given properties to all subscribers of a
given topic whose selector matches. It returns the number of subscribers
which received the message. Subscribers whose publish function fails are
removed.
*/
func (b *Broker) Publish(topic string, props map[string]interface{}) int {
	env := interpreter.NewPropertyEnv(props)

	b.lock.RLock()

	var matches []*Subscription
	total := 0

	for _, sub := range b.subs[topic] {
		total++
		if sub.sel.Eval(env) {
			matches = append(matches, sub)
		}
	}

	b.lock.RUnlock()

	receivers := 0

	for _, sub := range matches {
		if err := sub.publish(props); err != nil {
			b.Unsubscribe(sub.Topic, sub.ID)
			continue
		}
		receivers++
	}

	b.log.Log(timeutil.MakeTimestamp(), " publish topic=", topic,
		" subscribers=", total, " receivers=", receivers)

	return receivers
}

/*
RoutingLog returns the entries of the routing log.
*/
func (b *Broker) RoutingLog() []string {
	return b.log.StringSlice()
}
