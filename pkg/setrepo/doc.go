// Package setrepo lists communities and collections as harvesting sets.
//
// Communities and collections live in separate tables with independent
// counts. The Repository presents them as one virtual sequence, communities
// first, and serves windows of it without materializing the whole list:
//
//	repo, err := setrepo.New(setrepo.Config{
//	    Communities: communities,
//	    Collections: collections,
//	    Resolver:    resolver,
//	    Logger:      logger,
//	})
//
//	page := repo.List(ctx, 0, 100)
//	for _, s := range page.Sets {
//	    fmt.Println(s.Spec, s.Name)
//	}
//	if page.HasMore {
//	    // request the next window at offset 100
//	}
//
// Listing is best-effort: a storage failure on either side is logged and
// that side contributes nothing to the page. Existence checks fail closed: a
// spec that cannot be resolved is reported as not existing.
package setrepo
