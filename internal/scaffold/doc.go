// Package scaffold holds the embedded project template tree and copies it
// into a new project directory. The base/ tree is copied on every run;
// optional/ holds the capability module sources read by the capability
// package. Two base names are rewritten on the way out: gitignore becomes
// .gitignore and README-template.md becomes README.md.
package scaffold
