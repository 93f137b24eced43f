// Package source loads localized content trees from files, object storage,
// PostgreSQL and Redis.
//
// Every source returns trees keyed by language, each keyed by namespace:
//
//	trees, err := source.Dir("locales").Load(ctx)
//	// trees["en"]["common"] holds locales/en/common.yaml
//
// # Layout
//
// File-based sources (FS, S3) read {lang}/{namespace}.{json,yaml,yml}. Two
// files for the same language and namespace are merged.
//
// # Fences and rich text
//
// YAML nodes tagged !fence are wrapped with fence.New and merge as one leaf.
// !md and !html scalars become richtext nodes:
//
//	card: !fence
//	  title: Pricing
//	  price: 10
//	terms: !md "Read the **terms**."
//
// JSON documents use single-key marker objects instead: {"$fence": ...},
// {"$md": "..."} and {"$html": "..."}. EncodeJSON writes the same markers,
// so Postgres, Redis and cached content keep fences across a round trip.
//
// # Reloading
//
// Watch reloads a directory on change and Schedule reloads any source on a
// cron expression. Both hand the new trees to a callback such as
// locale.Localizer.SetContent.
package source
