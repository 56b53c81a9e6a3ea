// Package menu assembles the localized navigation menu.
//
// A Source returns flat rows joined from the menu view, the menu table and the
// translation table for one culture. Assembler orders them by Seq and turns
// them into a forest with core/hierarchy. Rows whose parent is not part of the
// reachable tree are dropped and counted.
package menu
