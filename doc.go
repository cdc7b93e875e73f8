// Package launcherkit merges launcher search results and keeps a persistent
// cache of app icons.
//
// # Quick Start
//
// Local mode:
//
//	ctx := context.Background()
//	kit, _ := launcherkit.Open(ctx, launcherkit.Local("./icons"))
//	defer kit.Close()
//
// Cloud mode:
//
//	s3Store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("icons/"))
//	kit, _ := launcherkit.Open(ctx, launcherkit.Remote(s3Store), launcherkit.WithBlockCache(64<<20))
//
// # Search Merge
//
// Device results come from on-device providers, web results from the
// search backend. MergeResults splices the web results into the device list
// at the app block end or at an explicit placeholder:
//
//	out := kit.MergeResults(ctx, web, device, search.MergeOptions{
//	    AllAppsWebCount: 3,
//	})
//
// The stateless form is search.Merge.
//
// # Icons
//
// Icons are stored as serialized icons.BitmapInfo buffers keyed by
// component:
//
//	key := iconcache.ComponentKey{Package: "com.example.maps", Class: ".Maps"}
//	kit.StoreIcon(ctx, key, icons.New(img, color), "Maps")
//	kit.Commit(ctx) // durable after this
//
//	d, _ := kit.LoadIcon(ctx, key, 0)
//	img := d.Image()
//
// A cache directory written by one process can be opened by others. With
// the DynamoDB commit store from blobstore/s3 concurrent writers are
// detected and Commit returns ErrConflict.
package launcherkit
