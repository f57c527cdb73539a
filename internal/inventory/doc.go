// Package inventory classifies neuroimaging scan files found under a site
// directory and collects them into a subject/session/modality/scan manifest.
//
// Paths are interpreted positionally: the first three segments below the
// root name the subject, session, and scan. Only files whose name carries the
// volume marker (".nii") are considered. The first file recorded for a given
// identity wins; later duplicates are counted and ignored.
package inventory
