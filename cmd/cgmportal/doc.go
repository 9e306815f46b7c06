// Command cgmportal runs the CGM portal and its maintenance tasks.
//
//	cgmportal serve                  run the web server
//	cgmportal migrate                apply database migrations
//	cgmportal targets [--file f]     print the target range table
//	cgmportal classify <metric> <v>  rate one metric value
//
// Configuration comes from the environment, seeded from the files given
// with --env-file (default ./.env when present).
package main
