// Command galleryorganizer fills in gallery metadata on a Stash server.
//
// Launched by the Stash plugin runtime it reads the task document from
// standard input, runs the selected maintenance pass, and writes the result
// document to standard output while logging in the host protocol on standard
// error. Operators can run the same passes directly with `galleryorganizer
// run <mode>` and inspect the environment, library paths, and run history.
package main
