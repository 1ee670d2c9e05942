// Package zone manages named layout slots whose content is produced by
// swappable factories.
//
// A Manager is created with a fixed list of zone names. Assigning a
// factory to a zone closes the previous occupant and mounts a fresh view
// from the new one:
//
//	mgr := zone.NewManager("header", "main", "footer")
//	if err := mgr.SetZoneGroup(zone.Group{
//		{Zone: "header", Factory: headerFactory},
//		{Zone: "main", Factory: tasksFactory},
//	}); err != nil {
//		return err
//	}
//
// Assigning the factory already in a zone does nothing, and every factory
// emits Closed before its replacement emits Created.
package zone
