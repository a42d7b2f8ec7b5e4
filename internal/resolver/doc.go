// Package resolver computes, per repository, the remote tags worth reporting.
//
// For one repository the pipeline is: list remote tags, list local tags
// (both sorted by object id), keep remote tags whose object id is unknown
// locally, drop tags rejected by the repository filters or already built
// according to the version catalog, and keep at most max-tags of them in
// object id order.
//
// ResolveAll runs repositories one after another. A failing repository is
// logged and reported in its Result; the remaining ones are still resolved.
package resolver
