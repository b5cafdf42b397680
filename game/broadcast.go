/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

// broadcast sends msg to every player in list order, skipping any ids in exclude.
func (c *Coordinator) broadcast(s *Session, msg any, exclude ...ClientID) {
	for _, p := range s.Players {
		skip := false
		for _, id := range exclude {
			if p.ID == id {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		c.registry.Send(p.ID, msg)
	}
}
