// Package updater tells users when a newer create-techpix-app release is
// available. The latest GitHub release is looked up at most once a day and
// cached under the config directory; the banner is printed from that cache.
package updater
